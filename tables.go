package sw10

// octaveTable holds three concatenated sub-tables used for exponential
// pitch scaling, indexed at different offsets depending on the caller:
// [0:112) holds the small sub-octave values below the ratio table,
// [112:216) doubles every twelve entries starting at 20 (a semitone ratio
// table, where the LFO rate lookup at octaveLFOBase starts), and [216:256)
// continues the doubling up to 77935 for the top octave of the pitch
// exponent lookup.
var octaveTable = [112 + 104 + 40]uint32{
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1,
	2, 2, 2, 2, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4,
	5, 5, 5, 5, 6, 6, 7, 7,
	8, 8, 8, 9, 10, 10, 11, 11,
	12, 13, 14, 15, 16, 16, 17, 19,
	// offset 112: semitone-ratio table
	20, 21, 22, 23, 25, 26, 28, 30,
	32, 33, 35, 38, 40, 42, 45, 47,
	50, 53, 57, 60, 64, 67, 71, 76,
	80, 85, 90, 95, 101, 107, 114, 120,
	128, 135, 143, 152, 161, 170, 181, 191,
	203, 215, 228, 241, 256, 271, 287, 304,
	322, 341, 362, 383, 406, 430, 456, 483,
	512, 542, 574, 608, 645, 683, 724, 767,
	812, 861, 912, 966, 1024, 1084, 1149, 1217,
	1290, 1366, 1448, 1534, 1625, 1722, 1824, 1933,
	2048, 2169, 2298, 2435, 2580, 2733, 2896, 3068,
	3250, 3444, 3649, 3866, 4096, 4339, 4597, 4870,
	5160, 5467, 5792, 6137, 6501, 6888, 7298, 7732,
	// offset 216: top-octave continuation
	8192, 8679, 9195, 9741, 10321, 10935, 11585, 12274,
	13003, 13777, 14596, 15464, 16384, 17358, 18390, 19483,
	20642, 21870, 23170, 24548, 26007, 27554, 29192, 30928,
	32768, 34716, 36780, 38967, 41285, 43740, 46340, 49096,
	52015, 55108, 58385, 61857, 65536, 69432, 73561, 77935,
}

// octaveLFOBase is the offset into octaveTable used when scaling LFO depth.
const octaveLFOBase = 112

// octaveExpBase is the offset into octaveTable used by the frequency
// exponent lookup in phaseIncrementFor.
const octaveExpBase = 216

// frequencyMantissaTable provides the fractional-semitone mantissa that
// is multiplied against an octaveTable entry to build a phase increment.
var frequencyMantissaTable = [256]uint32{
	32768, 32775, 32782, 32790, 32797, 32804, 32812, 32819,
	32827, 32834, 32842, 32849, 32856, 32864, 32871, 32879,
	32886, 32893, 32901, 32908, 32916, 32923, 32931, 32938,
	32945, 32953, 32960, 32968, 32975, 32983, 32990, 32998,
	33005, 33012, 33020, 33027, 33035, 33042, 33050, 33057,
	33065, 33072, 33080, 33087, 33094, 33102, 33109, 33117,
	33124, 33132, 33139, 33147, 33154, 33162, 33169, 33177,
	33184, 33192, 33199, 33207, 33214, 33222, 33229, 33237,
	33244, 33252, 33259, 33267, 33274, 33282, 33289, 33297,
	33304, 33312, 33319, 33327, 33334, 33342, 33349, 33357,
	33364, 33372, 33379, 33387, 33394, 33402, 33410, 33417,
	33425, 33432, 33440, 33447, 33455, 33462, 33470, 33477,
	33485, 33493, 33500, 33508, 33515, 33523, 33530, 33538,
	33546, 33553, 33561, 33568, 33576, 33583, 33591, 33599,
	33606, 33614, 33621, 33629, 33636, 33644, 33652, 33659,
	33667, 33674, 33682, 33690, 33697, 33705, 33712, 33720,
	33728, 33735, 33743, 33751, 33758, 33766, 33773, 33781,
	33789, 33796, 33804, 33811, 33819, 33827, 33834, 33842,
	33850, 33857, 33865, 33873, 33880, 33888, 33896, 33903,
	33911, 33918, 33926, 33934, 33941, 33949, 33957, 33964,
	33972, 33980, 33987, 33995, 34003, 34010, 34018, 34026,
	34033, 34041, 34049, 34057, 34064, 34072, 34080, 34087,
	34095, 34103, 34110, 34118, 34126, 34133, 34141, 34149,
	34157, 34164, 34172, 34180, 34187, 34195, 34203, 34211,
	34218, 34226, 34234, 34241, 34249, 34257, 34265, 34272,
	34280, 34288, 34296, 34303, 34311, 34319, 34327, 34334,
	34342, 34350, 34358, 34365, 34373, 34381, 34389, 34396,
	34404, 34412, 34420, 34427, 34435, 34443, 34451, 34458,
	34466, 34474, 34482, 34490, 34497, 34505, 34513, 34521,
	34528, 34536, 34544, 34552, 34560, 34567, 34575, 34583,
	34591, 34599, 34606, 34614, 34622, 34630, 34638, 34646,
	34653, 34661, 34669, 34677, 34685, 34692, 34700, 34708,
}

// adpcmShiftDelta maps a 2-bit nibble-derived index to the signed shift
// adjustment applied to the running ADPCM exponent.
var adpcmShiftDelta = [4]int32{0, 1, 2, -1}

// amplitudeExpTable converts a 0-16 exponential envelope step into a
// linear amplitude multiplier (0-32768, i.e. Q15 unity gain at the top).
var amplitudeExpTable = [17]int32{
	0, 250, 561, 949, 1430, 2030, 2776, 3704,
	4858, 6295, 8083, 10307, 13075, 16519, 20803, 26135,
	32768,
}

// drumKitLUT maps the eight GM percussion "kit" program slots (program
// numbers 0,8,16,24,25,32,40,48 on the drum channel) down to a compact
// 0-7 kit index.
var drumKitLUT = [8]int{0, 8, 16, 24, 25, 32, 40, 48}

func drumKitIndex(program int) (int, bool) {
	for i, p := range drumKitLUT {
		if p == program {
			return i, true
		}
	}
	return 0, false
}

// drumKillPairs is a single flat table of (note, killNote) pairs used to
// silence a still-ringing drum voice when a new one on the same kit note
// starts. It is really two sub-lists back to back - entries [0:38) for
// the default kit and [38:72) for program 135 - terminated by a single
// trailing zero at index 72. Starting the scan at index 0 deliberately
// walks through both sub-lists rather than stopping at the first one;
// that is how the ROM driver behaves and voice stealing depends on it.
var drumKillPairs = [38 + 34 + 1]int32{
	42, 44, 42, 46, 44, 42, 44, 46,
	46, 42, 46, 44, 71, 72, 72, 71,
	73, 74, 74, 73, 78, 79, 79, 78,
	80, 81, 81, 80, 29, 30, 30, 29,
	86, 87, 87, 86,
	255, 255,
	27, 28, 27, 29, 28, 27, 28, 29,
	29, 27, 29, 28, 71, 72, 72, 71,
	73, 74, 74, 73, 78, 79, 79, 78,
	80, 81, 81, 80, 86, 87, 87, 86,
	255, 255,
	0,
}

// drumKillStart returns the starting index into drumKillPairs for the
// current drum-channel program. Program 135 selects the second sub-list;
// every other program starts at zero.
func drumKillStart(drumProgram int) int {
	if drumProgram == 135 {
		return 38
	}
	return 0
}
