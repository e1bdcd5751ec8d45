package track

// code.go generates the GPS L1 C/A spreading sequence. Ported from
// sdrcode.go's GencodeL1CA (IS-GPS-200 G1/G2 shift-register generator);
// the original returns (nil, 0, 0) on an out-of-range PRN, this version
// returns a typed error instead.

var l1caPRNDelay = []int{
	5, 6, 7, 8, 17, 18, 139, 140, 141, 251,
	252, 254, 255, 256, 257, 258, 469, 470, 471, 472,
	473, 474, 509, 512, 513, 514, 515, 516, 859, 860,
	861, 862, 863, 950, 947, 948, 950, 67, 103, 91,
	19, 679, 225, 625, 946, 638, 161, 1001, 554, 280,
	710, 709, 775, 864, 558, 220, 397, 55, 898, 759,
	367, 299, 1018, 729, 695, 780, 801, 788, 732, 34,
	320, 327, 389, 407, 525, 405, 221, 761, 260, 326,
	955, 653, 699, 422, 188, 438, 959, 539, 879, 677,
	586, 153, 792, 814, 446, 264, 1015, 278, 536, 819,
	156, 957, 159, 712, 885, 461, 248, 713, 126, 807,
	279, 122, 197, 693, 632, 771, 467, 647, 203, 145,
	175, 52, 21, 237, 235, 886, 657, 634, 762, 355,
	1012, 176, 603, 130, 359, 595, 68, 386, 797, 456,
	499, 883, 307, 127, 211, 121, 118, 163, 628, 853,
	484, 289, 811, 202, 1021, 463, 568, 904, 670, 230,
	911, 684, 309, 644, 932, 12, 314, 891, 212, 185,
	675, 503, 150, 395, 345, 846, 798, 992, 357, 995,
	877, 112, 144, 476, 193, 109, 445, 291, 87, 399,
	292, 901, 339, 208, 711, 189, 263, 537, 663, 942,
	173, 900, 30, 500, 935, 556, 373, 85, 652, 310,
}

// GencodeL1CA generates the 1023-chip C/A code for a GPS satellite PRN
// (1..32) as a sequence of +1/-1 chips.
func GencodeL1CA(prn int) ([]int16, error) {
	if prn < 1 || prn > 32 {
		return nil, configErrorf("PRN", "must be in [1,32], got %d", prn)
	}
	var r1, r2 [10]int8
	for i := range r1 {
		r1[i], r2[i] = -1, -1
	}
	var g1, g2 [CACodeLengthChips]int8
	for i := 0; i < CACodeLengthChips; i++ {
		g1[i] = r1[9]
		g2[i] = r2[9]
		c1 := r1[2] * r1[9]
		c2 := r2[1] * r2[2] * r2[5] * r2[7] * r2[8] * r2[9]
		for j := 9; j > 0; j-- {
			r1[j] = r1[j-1]
			r2[j] = r2[j-1]
		}
		r1[0] = c1
		r2[0] = c2
	}
	code := make([]int16, CACodeLengthChips)
	j := CACodeLengthChips - l1caPRNDelay[prn-1]
	for i := 0; i < CACodeLengthChips; i++ {
		code[i] = int16(-g1[i] * g2[j%CACodeLengthChips])
		j++
	}
	return code, nil
}

// BuildReplicaBuffer wraps a 1023-chip code into the 1025-element
// sentinel buffer spec.md §4.1 describes: index 0 is the wrap of index
// 1023, index 1024 is a copy of index 1, so the fmod-based lookups in
// the resampler never need to branch for the wraparound case.
func BuildReplicaBuffer(code []int16) []int16 {
	buf := make([]int16, CACodeLengthChips+2)
	copy(buf[1:], code)
	buf[0] = buf[CACodeLengthChips]
	buf[CACodeLengthChips+1] = buf[1]
	return buf
}
