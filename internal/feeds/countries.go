package feeds

// countryNames is the incident allow-list: continental Europe plus the
// United States. Victims from any other country are dropped.
var countryNames = map[string]string{
	"FR": "France",
	"DE": "Germany",
	"IT": "Italy",
	"ES": "Spain",
	"PT": "Portugal",
	"BE": "Belgium",
	"NL": "Netherlands",
	"LU": "Luxembourg",
	"CH": "Switzerland",
	"AT": "Austria",
	"PL": "Poland",
	"CZ": "Czechia",
	"SK": "Slovakia",
	"HU": "Hungary",
	"SI": "Slovenia",
	"HR": "Croatia",
	"RS": "Serbia",
	"BA": "Bosnia and Herzegovina",
	"ME": "Montenegro",
	"MK": "North Macedonia",
	"BG": "Bulgaria",
	"RO": "Romania",
	"MD": "Moldova",
	"UA": "Ukraine",
	"BY": "Belarus",
	"LT": "Lithuania",
	"LV": "Latvia",
	"EE": "Estonia",
	"AL": "Albania",
	"GR": "Greece",
	"SE": "Sweden",
	"NO": "Norway",
	"DK": "Denmark",
	"FI": "Finland",
	"US": "United States",
}

// countryCoords maps country codes to simplified map centroids
// (latitude, longitude). Codes missing here render at [0,0].
var countryCoords = map[string][2]float64{
	"FR": {46.6, 2.2},
	"DE": {51.1, 10.4},
	"IT": {42.9, 12.6},
	"ES": {40.4, -3.7},
	"PT": {39.4, -8.2},
	"BE": {50.8, 4.6},
	"NL": {52.1, 5.3},
	"LU": {49.8, 6.1},
	"CH": {46.8, 8.2},
	"AT": {47.6, 14.1},
	"PL": {52.1, 19.4},
	"CZ": {49.8, 15.5},
	"SK": {48.7, 19.7},
	"HU": {47.2, 19.5},
	"SI": {46.1, 14.8},
	"HR": {45.8, 16.0},
	"RS": {44.0, 20.9},
	"BA": {44.2, 17.7},
	"ME": {42.7, 19.3},
	"MK": {41.6, 21.7},
	"BG": {42.7, 25.5},
	"RO": {45.9, 24.9},
	"MD": {47.0, 28.8},
	"UA": {48.4, 31.2},
	"BY": {53.7, 27.9},
	"LT": {55.2, 23.8},
	"LV": {56.9, 24.6},
	"EE": {58.7, 25.0},
	"AL": {41.1, 20.0},
	"GR": {39.1, 22.9},
	"SE": {60.1, 18.6},
	"NO": {60.5, 8.5},
	"DK": {56.0, 10.0},
	"FI": {64.5, 26.0},
	"US": {39.8, -98.6},
}
