package testutil

// Fixtures holds shared tile maps for pathfinding tests.
var Fixtures = struct {
	// WallWithGap is 10×10 with column x=5 solid except an opening at y=9.
	WallWithGap []string

	// Enclosed has the goal sealed inside a ring of walls.
	Enclosed []string

	// Corridor is a straight 1-tile-high corridor between walls.
	Corridor []string

	// Maze is a small winding maze with S and G markers.
	Maze []string
}{
	WallWithGap: []string{
		".....#....",
		".....#....",
		".....#....",
		".....#....",
		".....#....",
		".....#....",
		".....#....",
		".....#....",
		".....#....",
		"..........",
	},
	Enclosed: []string{
		"S.........",
		"..........",
		"...#####..",
		"...#...#..",
		"...#.G.#..",
		"...#...#..",
		"...#####..",
		"..........",
	},
	Corridor: []string{
		"############",
		"S..........G",
		"############",
	},
	Maze: []string{
		"S.#.......",
		"..#.####..",
		"..#....#..",
		"..####.#..",
		".......#..",
		"########..",
		"G.........",
	},
}
