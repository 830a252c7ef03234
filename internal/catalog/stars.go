package catalog

// Star is a catalogued star with its J2000 position, brightness and spectral
// classification.
type Star struct {
	Name     string  // Common name (e.g., "Sirius", "Vega")
	RAdeg    float64 // Right Ascension in degrees (J2000)
	DecDeg   float64 // Declination in degrees (J2000)
	Mag      float64 // Apparent visual magnitude (lower = brighter)
	Spectral string  // MK spectral type (e.g., "A1V")
}

// BrightStars returns a copy of the built-in list of bright stars (mag < 5).
// Coordinates are J2000 epoch.
// Data sourced from Yale Bright Star Catalog and IAU star names.
func BrightStars() []Star {
	out := make([]Star, len(defaultStars))
	copy(out, defaultStars)
	return out
}

// defaultStars contains bright stars visible from various latitudes.
// Ordered roughly by magnitude (brightest first).
var defaultStars = []Star{
	// Magnitude < 0 (exceptionally bright)
	{"Sirius", 101.287, -16.716, -1.46, "A1V"},
	{"Canopus", 95.988, -52.696, -0.74, "A9II"},
	{"Arcturus", 213.915, 19.182, -0.05, "K1.5III"},
	{"Vega", 279.235, 38.784, 0.03, "A0V"},
	{"Capella", 79.172, 45.998, 0.08, "G3III"},
	{"Rigel", 78.634, -8.202, 0.13, "B8Ia"},
	{"Procyon", 114.826, 5.225, 0.34, "F5IV"},
	{"Achernar", 24.429, -57.237, 0.46, "B6V"},
	{"Betelgeuse", 88.793, 7.407, 0.50, "M1Ia"},
	{"Hadar", 210.956, -60.373, 0.61, "B1III"},

	// Magnitude 0.5-1.0
	{"Altair", 297.696, 8.868, 0.76, "A7V"},
	{"Acrux", 186.650, -63.099, 0.76, "B0.5IV"},
	{"Aldebaran", 68.980, 16.509, 0.85, "K5III"},
	{"Antares", 247.352, -26.432, 0.96, "M1.5Iab"},
	{"Spica", 201.298, -11.161, 0.97, "B1V"},
	{"Pollux", 116.329, 28.026, 1.14, "K0III"},

	// Magnitude 1.0-1.5
	{"Fomalhaut", 344.413, -29.622, 1.16, "A3V"},
	{"Deneb", 310.358, 45.280, 1.25, "A2Ia"},
	{"Mimosa", 191.930, -59.689, 1.25, "B0.5III"},
	{"Regulus", 152.093, 11.967, 1.35, "B8IV"},
	{"Adhara", 104.656, -28.972, 1.50, "B2II"},
	{"Castor", 113.650, 31.889, 1.58, "A1V"},

	// Magnitude 1.5-2.0
	{"Gacrux", 187.791, -57.113, 1.63, "M3.5III"},
	{"Shaula", 263.402, -37.104, 1.63, "B2IV"},
	{"Bellatrix", 81.283, 6.350, 1.64, "B2III"},
	{"Elnath", 81.573, 28.608, 1.65, "B7III"},
	{"Miaplacidus", 138.300, -69.717, 1.68, "A1III"},
	{"Alnilam", 84.053, -1.202, 1.69, "B0Ia"},
	{"Alnair", 332.058, -46.961, 1.74, "B6V"},
	{"Alnitak", 85.190, -1.943, 1.77, "O9.5Ib"},
	{"Alioth", 193.507, 55.960, 1.77, "A1III"},
	{"Dubhe", 165.932, 61.751, 1.79, "K0III"},
	{"Mirfak", 51.081, 49.861, 1.79, "F5Ib"},
	{"Wezen", 107.098, -26.393, 1.84, "F8Ia"},
	{"Sargas", 264.330, -42.998, 1.87, "F1II"},
	{"Kaus Australis", 276.043, -34.384, 1.85, "B9.5III"},
	{"Avior", 125.629, -59.509, 1.86, "K3III"},
	{"Alkaid", 206.885, 49.313, 1.86, "B3V"},
	{"Menkalinan", 89.882, 44.948, 1.90, "A1IV"},
	{"Atria", 252.166, -69.028, 1.92, "K2IIb"},
	{"Alhena", 99.428, 16.399, 1.93, "A1IV"},
	{"Peacock", 306.412, -56.735, 1.94, "B2IV"},
	{"Alsephina", 131.176, -54.709, 1.96, "A1V"},
	{"Mirzam", 95.675, -17.956, 1.98, "B1II"},
	{"Polaris", 37.954, 89.264, 2.02, "F7Ib"},
	{"Alphard", 141.897, -8.659, 2.00, "K3II"},

	// Magnitude 2.0-2.5
	{"Hamal", 31.793, 23.463, 2.00, "K2III"},
	{"Algieba", 146.463, 19.842, 2.08, "K0III"},
	{"Diphda", 10.897, -17.987, 2.02, "K0III"},
	{"Nunki", 283.816, -26.297, 2.02, "B2.5V"},
	{"Mizar", 200.981, 54.925, 2.04, "A2V"},
	{"Alpheratz", 2.097, 29.091, 2.06, "B8IV"},
	{"Saiph", 86.939, -9.670, 2.09, "B0.5Ia"},
	{"Mirach", 17.433, 35.621, 2.05, "M0III"},
	{"Kochab", 222.676, 74.156, 2.08, "K4III"},
	{"Rasalhague", 263.734, 12.560, 2.08, "A5III"},
	{"Algol", 47.042, 40.957, 2.12, "B8V"},
	{"Denebola", 177.265, 14.572, 2.13, "A3V"},
	{"Muhlifain", 190.379, -48.960, 2.17, "A1IV"},
	{"Naos", 120.896, -40.003, 2.25, "O4I"},
	{"Aspidiske", 139.273, -59.275, 2.25, "A8Ib"},
	{"Suhail", 136.999, -43.433, 2.21, "K4Ib"},
	{"Alphecca", 233.672, 26.715, 2.23, "A0V"},
	{"Mintaka", 83.002, -0.299, 2.23, "O9.5II"},
	{"Sadr", 305.557, 40.257, 2.23, "F8Ib"},
	{"Eltanin", 269.152, 51.489, 2.23, "K5III"},
	{"Schedar", 10.127, 56.537, 2.23, "K0III"},
	{"Caph", 2.295, 59.150, 2.27, "F2III"},
	{"Dschubba", 240.083, -22.622, 2.32, "B0.3IV"},
	{"Larawag", 254.655, -34.293, 2.29, "K2III"},
	{"Merak", 165.460, 56.382, 2.37, "A1V"},
	{"Izar", 221.247, 27.074, 2.37, "K0II"},

	// Magnitude 2.5-3.0
	{"Enif", 326.046, 9.875, 2.39, "K2Ib"},
	{"Ankaa", 6.571, -42.306, 2.38, "K0III"},
	{"Phecda", 178.458, 53.695, 2.44, "A0V"},
	{"Sabik", 257.595, -15.725, 2.43, "A2V"},
	{"Scheat", 345.944, 28.083, 2.42, "M2.5II"},
	{"Alderamin", 319.645, 62.586, 2.51, "A8V"},
	{"Aludra", 111.024, -29.303, 2.45, "B5Ia"},
	{"Markeb", 140.528, -55.011, 2.47, "B2IV"},
	{"Girtab", 265.622, -39.030, 2.41, "F1II"},
	{"Navi", 14.177, 60.717, 2.47, "B0.5IV"},
	{"Markab", 346.190, 15.205, 2.49, "B9III"},
	{"Aljanah", 311.553, 33.970, 2.48, "K0III"},
	{"Acrab", 241.359, -19.805, 2.62, "B1V"},

	// Magnitude 3.0-3.5
	{"Aldhanab", 319.966, -16.127, 3.00, "B8III"},
	{"Gienah", 183.952, -17.542, 2.59, "B8III"},
	{"Zubeneschamali", 229.252, -9.383, 2.61, "B8V"},
	{"Unukalhai", 236.067, 6.426, 2.65, "K2III"},
	{"Sheratan", 28.660, 20.808, 2.64, "A5V"},
	{"Phact", 84.912, -34.074, 2.64, "B7IV"},
	{"Menkent", 211.671, -36.370, 2.06, "K0III"},
	{"Zosma", 168.527, 20.524, 2.56, "A4V"},
	{"Arneb", 83.183, -17.822, 2.58, "F0Ib"},
	{"Gomeisa", 111.788, 8.289, 2.90, "B8V"},
	{"Deneb Kaitos", 10.897, -17.987, 2.04, "K0III"},
	{"Thuban", 211.097, 64.376, 3.65, "A0III"},
	{"Rastaban", 262.608, 52.301, 2.79, "G2Ib"},
	{"Cor Caroli", 194.007, 38.318, 2.81, "A0V"},
	{"Vindemiatrix", 195.544, 10.959, 2.83, "G8III"},
	{"Algorab", 187.466, -16.515, 2.95, "B9V"},
	{"Zubenelgenubi", 222.720, -16.042, 2.75, "A3IV"},
	{"Porrima", 190.415, -1.449, 2.74, "F0V"},

	// Magnitude 3.5-4.0 (subtle stars)
	{"Albireo", 292.680, 27.960, 3.18, "K3II"},
	{"Sadalmelik", 331.446, -0.320, 2.96, "G2Ib"},
	{"Sadalsuud", 322.890, -5.571, 2.91, "G0Ib"},
	{"Yed Prior", 243.586, -3.694, 2.75, "M1III"},
	{"Alcyone", 56.871, 24.105, 2.87, "B7III"},
	{"Tarazed", 296.565, 10.613, 2.72, "K3II"},
	{"Alshain", 298.828, 6.407, 3.71, "G8IV"},
	{"Nihal", 82.061, -20.759, 2.84, "G5II"},
	{"Wazn", 90.399, -35.768, 3.85, "K1III"},
	{"Muscida", 127.566, 60.718, 3.35, "G4II"},
	{"Talitha", 134.802, 48.042, 3.14, "A7V"},
	{"Tania Australis", 155.582, 41.499, 3.05, "M0III"},
	{"Alula Australis", 169.545, 31.529, 3.78, "G0V"},
	{"Megrez", 183.857, 57.033, 3.31, "A3V"},
	{"Alcor", 201.306, 54.988, 3.99, "A5V"},
	{"Syrma", 214.004, -6.001, 4.08, "F7IV"},
	{"Khambalia", 218.877, -13.371, 4.66, "A7V"},
	{"Kraz", 188.597, -23.397, 2.65, "G5II"},
	{"Alkes", 164.944, -18.299, 4.08, "K1III"},
	{"Minkar", 182.531, -22.620, 3.02, "K2III"},
	{"Sceptrum", 62.966, -8.898, 4.45, "K0III"},
	{"Cursa", 76.963, -5.086, 2.79, "A3III"},
	{"Hassaleh", 75.492, 33.166, 2.69, "K3II"},
	{"Hoedus I", 75.620, 41.234, 3.04, "K4II"},
	{"Hoedus II", 75.248, 41.076, 3.17, "B3V"},
	{"Saclateni", 79.402, 40.010, 3.69, "K4II"},

	// Magnitude 4.0-4.5 (dim background stars)
	{"Furud", 95.078, -30.063, 3.96, "B2.5V"},
	{"Muliphein", 105.940, -15.633, 4.11, "B8V"},
	{"Tejat", 95.740, 22.513, 2.88, "M3III"},
	{"Mebsuta", 100.983, 25.131, 3.06, "G8Ib"},
	{"Propus", 93.719, 22.506, 3.28, "M3III"},
	{"Wasat", 110.031, 21.982, 3.53, "F0IV"},
	{"Kappa Gem", 116.112, 24.398, 3.57, "G8III"},
	{"Asellus Australis", 131.171, 18.154, 3.94, "K0III"},
	{"Asellus Borealis", 130.821, 21.469, 4.66, "A1IV"},
	{"Acubens", 134.622, 11.858, 4.25, "A5V"},
	{"Alterf", 139.711, 22.968, 4.31, "K4III"},
	{"Rasalas", 146.463, 26.007, 3.88, "K2III"},
	{"Adhafera", 154.173, 23.417, 3.43, "F0III"},
	{"Subra", 148.191, 9.893, 3.52, "K0III"},
	{"Chertan", 168.560, 15.430, 3.33, "A2V"},
	{"Zavijava", 177.674, 1.765, 3.61, "F9V"},

	// Magnitude 4.5-5.0 (very dim, adds density)
	{"Tyl", 288.439, 67.661, 4.01, "G9III"},
	{"Edasich", 231.232, 58.966, 3.29, "K2III"},
	{"Giausar", 175.942, 69.331, 3.85, "K3III"},
	{"Grumium", 268.382, 56.873, 3.75, "K2III"},
	{"Alsafi", 282.520, 52.301, 4.67, "K0V"},
	{"Alrakis", 245.998, 61.514, 4.67, "G8V"},
	{"Dziban", 270.162, 72.149, 4.54, "F5IV"},
	{"Pherkad", 230.182, 71.834, 3.00, "A3II"},
	{"Yildun", 263.054, 86.586, 4.36, "A1V"},
	{"Epsilon Dra", 297.043, 70.268, 3.83, "G8III"},
	{"Chi Dra", 274.966, 72.733, 3.57, "F7V"},
	{"Gianfar", 284.073, 75.388, 4.13, "K3III"},
	{"Aldhibah", 256.343, 65.715, 3.17, "B6III"},
	{"Nodus Secundus", 246.998, 61.514, 3.07, "G9III"},
	{"Tania Borealis", 154.274, 42.914, 3.45, "A2IV"},
	{"Alula Borealis", 169.620, 33.094, 3.49, "K3III"},
	{"Chara", 188.436, 41.357, 4.26, "G0V"},
	{"Asterion", 194.289, 38.318, 4.25, "G0V"},
	{"Diadem", 197.497, 17.529, 4.32, "F6V"},
	{"Zaniah", 184.976, -0.667, 3.89, "A2V"},
	{"Auva", 192.855, 3.397, 3.38, "M3III"},
	{"Heze", 203.673, -0.596, 3.37, "A2V"},
}
