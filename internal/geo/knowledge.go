package geo

// SeedLocation is a built-in knowledge table entry
type SeedLocation struct {
	Name  string
	Point Point
	Kind  string
}

// SeedLocations are Klang Valley areas, landmarks, and rail stations the
// platform knows about without consulting any external provider. Loaded
// into the known_locations table at startup.
var SeedLocations = []SeedLocation{
	{"klcc", Point{3.1579, 101.7123}, "landmark"},
	{"pavilion", Point{3.1489, 101.7133}, "landmark"},
	{"bukit bintang", Point{3.1466, 101.7110}, "area"},
	{"mont kiara", Point{3.1727, 101.6509}, "area"},
	{"sri hartamas", Point{3.1619, 101.6522}, "area"},
	{"bandar utama", Point{3.1466, 101.6130}, "area"},
	{"mutiara damansara", Point{3.1576, 101.6097}, "area"},
	{"damansara", Point{3.1490, 101.6300}, "area"},
	{"damansara utama", Point{3.1343, 101.6218}, "area"},
	{"damansara jaya", Point{3.1288, 101.6170}, "area"},
	{"taman tun dr ismail", Point{3.1511, 101.6306}, "area"},
	{"kepong", Point{3.2098, 101.6343}, "area"},
	{"petaling jaya", Point{3.1073, 101.6067}, "area"},
	{"subang jaya", Point{3.0567, 101.5851}, "area"},
	{"shah alam", Point{3.0733, 101.5185}, "area"},
	{"cheras", Point{3.0813, 101.7452}, "area"},
	{"ampang", Point{3.1500, 101.7624}, "area"},
	{"sentul", Point{3.1868, 101.6936}, "area"},
	{"wangsa maju", Point{3.2054, 101.7317}, "area"},
	{"puchong", Point{3.0246, 101.6239}, "area"},
	{"cyberjaya", Point{2.9213, 101.6559}, "area"},
	{"putrajaya", Point{2.9264, 101.6964}, "area"},
	{"kelana jaya", Point{3.1036, 101.6046}, "area"},
	{"sunway", Point{3.0672, 101.6038}, "area"},
	{"sungai buloh", Point{3.2060, 101.5780}, "area"},
	{"mrt surian", Point{3.1500, 101.5940}, "station"},
	{"mrt sungai buloh", Point{3.2060, 101.5780}, "station"},
	{"mrt bandar utama", Point{3.1462, 101.6189}, "station"},
	{"mrt mutiara damansara", Point{3.1563, 101.6086}, "station"},
	{"klcc lrt", Point{3.1589, 101.7135}, "station"},
	{"kl sentral", Point{3.1344, 101.6861}, "station"},
}

// SeedStation is a built-in transport_stations entry
type SeedStation struct {
	Name  string
	Line  string
	Type  string // mrt, lrt, ktm, monorail
	Point Point
}

// SeedStations are the Klang Valley rail stations loaded into the
// transport_stations table at startup. Proximity annotations depend on
// this table having rows.
var SeedStations = []SeedStation{
	{"Sungai Buloh", "MRT Kajang Line", "mrt", Point{3.2060, 101.5780}},
	{"Kwasa Damansara", "MRT Kajang Line", "mrt", Point{3.1766, 101.5722}},
	{"Surian", "MRT Kajang Line", "mrt", Point{3.1500, 101.5940}},
	{"Mutiara Damansara", "MRT Kajang Line", "mrt", Point{3.1563, 101.6086}},
	{"Bandar Utama", "MRT Kajang Line", "mrt", Point{3.1462, 101.6189}},
	{"Taman Tun Dr Ismail", "MRT Kajang Line", "mrt", Point{3.1360, 101.6297}},
	{"Phileo Damansara", "MRT Kajang Line", "mrt", Point{3.1296, 101.6428}},
	{"Pasar Seni", "MRT Kajang Line", "mrt", Point{3.1422, 101.6958}},
	{"Bukit Bintang", "MRT Kajang Line", "mrt", Point{3.1462, 101.7113}},
	{"Gombak", "LRT Kelana Jaya Line", "lrt", Point{3.2316, 101.7244}},
	{"Wangsa Maju", "LRT Kelana Jaya Line", "lrt", Point{3.2057, 101.7317}},
	{"Ampang Park", "LRT Kelana Jaya Line", "lrt", Point{3.1599, 101.7190}},
	{"KLCC", "LRT Kelana Jaya Line", "lrt", Point{3.1589, 101.7135}},
	{"Taman Jaya", "LRT Kelana Jaya Line", "lrt", Point{3.1041, 101.6452}},
	{"Kelana Jaya", "LRT Kelana Jaya Line", "lrt", Point{3.1125, 101.6043}},
	{"KL Sentral", "KTM Port Klang Line", "ktm", Point{3.1344, 101.6861}},
	{"Subang Jaya", "KTM Port Klang Line", "ktm", Point{3.0845, 101.5881}},
	{"Kepong", "KTM Seremban Line", "ktm", Point{3.2013, 101.6372}},
	{"Bukit Bintang", "KL Monorail", "monorail", Point{3.1466, 101.7110}},
	{"Medan Tuanku", "KL Monorail", "monorail", Point{3.1594, 101.6983}},
}
