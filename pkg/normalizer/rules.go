package normalizer

// Order matters: every keyword sits above any shorter keyword it contains.
var builderRules = []Rule{
	{"ace group", "Ace Group"},
	{"acegroup", "Ace Group"},

	{"ats homekraft", "ATS Homekraft"},
	{"ats homecraft", "ATS Homekraft"},
	{"homecraft group", "ATS Homekraft"},
	{"homecraft", "ATS Homekraft"},
	{"home kraft", "ATS Homekraft"},
	{"homekraft", "ATS Homekraft"},

	{"ats greens", "ATS Greens"},
	{"ats green", "ATS Greens"},
	{"ats group", "ATS Greens"},

	{"bhutani group", "Bhutani"},
	{"bhutani", "Bhutani"},
	{"crc group", "CRC"},
	{"crc", "CRC"},
	{"eldeco group", "Eldeco"},
	{"eldeco", "Eldeco"},
	{"exotica group", "Exotica"},
	{"exotica", "Exotica"},
	{"experion group", "Experion"},
	{"experion", "Experion"},
	{"fairfox group", "Fairfox"},
	{"fairfox", "Fairfox"},
	{"godrej properties", "Godrej"},
	{"godrej", "Godrej"},
	{"group 108", "Group 108"},
	{"group108", "Group 108"},
	{"gulshan group", "Gulshan"},
	{"gulshan", "Gulshan"},
	{"kalpataru group", "Kalpataru"},
	{"kalpataru", "Kalpataru"},
	{"kalptaru", "Kalpataru"},
	{"kalpatru", "Kalpataru"},
	{"max estates", "Max Estates"},
	{"max estate", "Max Estates"},
	{"maxestates", "Max Estates"},
	{"prestige group", "Prestige"},
	{"prestige", "Prestige"},
	{"sobha group", "Sobha"},
	{"sobha", "Sobha"},
	{"stellar group", "Stellar"},
	{"stellar", "Stellar"},
	{"tata housing", "Tata"},
	{"tata", "Tata"},
	{"l&t realty", "L&T Realty"},
	{"l & t", "L&T Realty"},
	{"l and t", "L&T Realty"},
	{"lt realty", "L&T Realty"},
	{"l&t", "L&T Realty"},
	{"m3m group", "M3M"},
	{"m3m india", "M3M"},
	{"m3m", "M3M"},

	// Bare "ats" also fires inside unrelated words ("stats"). Kept last on purpose.
	{"ats", "ATS Greens"},
}

var locationRules = []Rule{
	{"greater noida west", "Greater Noida West"},

	{"noida extension", "Noida Extension"},
	{"noida ext", "Noida Extension"},
	{"noidaext", "Noida Extension"},

	{"greater noida", "Greater Noida"},
	{"graeter noida", "Greater Noida"},
	{"g noida", "Greater Noida"},
	{"gtnoida", "Greater Noida"},
	{"greater", "Greater Noida"},
	{"graeter", "Greater Noida"},

	{"noida", "Noida"},
	{"ghaziabad", "Ghaziabad"},
	{"dhulera", "Dhulera"},

	{"yamuna expressway", "Yamuna Expressway"},
	{"yamuna express", "Yamuna Expressway"},
	{"yamuna exp", "Yamuna Expressway"},
	{"yamunaexp", "Yamuna Expressway"},
	{"yamuna", "Yamuna Expressway"},

	{"new delhi", "Delhi"},
	{"delhi", "Delhi"},
	{"national capital region", "NCR"},
	{"ncr", "NCR"},

	// Bare "ext" matches words like "next"; it must stay last.
	{"ext", "Noida Extension"},
}
