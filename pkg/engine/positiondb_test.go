package engine

import (
	"testing"

	"github.com/matryer/is"
)

func TestPositionDB(t *testing.T) {
	is := is.New(t)
	db := NewPositionDB()

	db.Add(&PositionEntry{
		ID:          "test123",
		Name:        "Test Position",
		Category:    CategoryMidgame,
		Description: "A test position",
		Board:       InitialBoard(),
		Tags:        []string{"test", "spread"},
	})

	is.Equal(db.Count(), 1)

	got := db.Get("test123")
	is.True(got != nil)
	is.Equal(got.Name, "Test Position")
	is.Equal(got.Race.Pips, [2]int{360, 360})

	is.Equal(len(db.GetByCategory(CategoryMidgame)), 1)
	is.Equal(len(db.GetByTag("test")), 1)
	is.Equal(len(db.GetByTag("missing")), 0)
}

func TestPositionDBDerivesIDAndCategory(t *testing.T) {
	is := is.New(t)
	db := NewPositionDB()

	db.Add(&PositionEntry{Name: "start", Board: InitialBoard()})

	entry := db.Get("fAAAAAAAAAAAvAAAAAAAAAAA")
	is.True(entry != nil)
	is.Equal(entry.Category, CategoryOpening)
}

func TestPositionDBSearch(t *testing.T) {
	is := is.New(t)
	db := NewPositionDB()

	db.Add(&PositionEntry{
		ID:          "pos1",
		Name:        "Blocked Head",
		Description: "Head checker cannot leave",
		Board:       InitialBoard(),
		Tags:        []string{"blocked", "prime"},
	})
	db.Add(&PositionEntry{
		ID:          "pos2",
		Name:        "Race Ending",
		Description: "Both sides nearly home",
		Board:       InitialBoard(),
		Tags:        []string{"race"},
	})

	is.Equal(len(db.Search("blocked head")), 1) // name
	is.Equal(len(db.Search("NEARLY")), 1)       // description, any case
	is.Equal(len(db.Search("prime")), 1)        // tag
	is.Equal(len(db.Search("e")), 2)

	all := db.All()
	is.Equal(len(all), 2)
	is.Equal(all[0].Name, "Blocked Head")
}

func TestDefaultPositionDB(t *testing.T) {
	is := is.New(t)
	db := DefaultPositionDB()

	is.Equal(db.Count(), 6)

	start := db.Get("fAAAAAAAAAAAvAAAAAAAAAAA")
	is.True(start != nil)
	is.Equal(start.Category, CategoryOpening)

	home := db.Search("light home")
	is.Equal(len(home), 1)
	is.Equal(home[0].Category, CategoryHome)
	is.True(home[0].Race.Home[0])

	// every catalogue entry is a position the engine accepts
	for _, p := range db.All() {
		_, err := FindMoves(p.Board, Light, [2]int{3, 5})
		is.NoErr(err)
	}

	blocked := db.Search("no legal move")
	is.Equal(len(blocked), 1)
	moves, err := FindMoves(blocked[0].Board, Light, [2]int{5, 3})
	is.NoErr(err)
	is.Equal(len(moves), 0)
}

func TestClassifyPosition(t *testing.T) {
	tests := []struct {
		name  string
		cells map[int]Cell
		want  PositionCategory
	}{
		{"empty", nil, CategoryUnknown},
		{"light left head", map[int]Cell{0: light(14), 4: light(1), 12: dark(15)}, CategoryDevelopment},
		{"heads cleared", map[int]Cell{5: light(15), 17: dark(15)}, CategoryMidgame},
		{"dark home", map[int]Cell{6: dark(10), 11: dark(5), 0: light(15)}, CategoryHome},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			is.Equal(ClassifyPosition(mustBoard(t, tc.cells)), tc.want)
		})
	}

	is.New(t).Equal(ClassifyPosition(InitialBoard()), CategoryOpening)
}

func TestFindSimilar(t *testing.T) {
	is := is.New(t)
	db := DefaultPositionDB()

	board := InitialBoard()
	is.NoErr(board.MovePiece(Piece{Color: Light, Position: 0}, 3))

	similar := db.FindSimilar(board, 5)
	is.True(len(similar) > 0)
	is.Equal(similar[0].Entry.Name, "Starting Position")
	is.True(similar[0].Similarity > 0.9)
}

func TestPositionCategoryString(t *testing.T) {
	tests := []struct {
		cat  PositionCategory
		want string
	}{
		{CategoryUnknown, "Unknown"},
		{CategoryOpening, "Opening"},
		{CategoryDevelopment, "Development"},
		{CategoryHome, "Home"},
		{PositionCategory(42), "Unknown"},
		{PositionCategory(-1), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.cat.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}
