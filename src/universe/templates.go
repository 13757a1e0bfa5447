package universe

//DefaultTemplates are registered in every new universe
var DefaultTemplates = []Template{
	{"block", "2x2 still life", [][]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}}},
	{"blinker", "period 2 oscillator", [][]int{{1, 2}, {2, 2}, {3, 2}}},
	{"glider", "moves one cell diagonally every 4 generations", [][]int{{2, 1}, {3, 2}, {1, 3}, {2, 3}, {3, 3}}},
	{"testSample1", "the test sample with 3 stable patterns", [][]int{
		{1, 1}, {1, 2},
		{2, 1}, {2, 2},
		{3, 3},
		{4, 2},
		{4, 3},
		{5, 3},
	}},
	{"rpentomino", "methuselah, stabilizes after 1103 generations on an unbounded field", [][]int{{2, 1}, {3, 1}, {1, 2}, {2, 2}, {2, 3}}},
}

//TemplateByName looks the template up in DefaultTemplates
func TemplateByName(name string) (Template, bool) {
	for _, t := range DefaultTemplates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}
