package engine

import (
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// PositionCategory represents the stage of the game a position belongs to.
type PositionCategory int

const (
	CategoryUnknown     PositionCategory = iota
	CategoryOpening                      // Both heads still full
	CategoryDevelopment                  // At least one side still has checkers on its head
	CategoryMidgame                      // Heads cleared, nobody home yet
	CategoryHome                         // At least one side has every checker home
)

// String returns the human-readable name of the category.
func (c PositionCategory) String() string {
	names := [...]string{
		"Unknown", "Opening", "Development", "Midgame", "Home",
	}
	if c < 0 || int(c) >= len(names) {
		return "Unknown"
	}
	return names[c]
}

// PositionEntry represents a position in the database.
type PositionEntry struct {
	ID          string           `json:"id"`          // Position ID
	Name        string           `json:"name"`        // Human-readable name
	Category    PositionCategory `json:"category"`    // Position category
	Description string           `json:"description"` // Detailed description
	Board       Board            `json:"-"`           // Board position
	Tags        []string         `json:"tags"`        // Searchable tags

	// Filled in by Add
	Race RaceInfo `json:"race"`
}

// PositionDB is an in-memory catalogue of named positions.
type PositionDB struct {
	positions  map[string]*PositionEntry
	byCategory map[PositionCategory][]*PositionEntry
	byTag      map[string][]*PositionEntry
	mu         sync.RWMutex
}

// NewPositionDB creates a new empty position database.
func NewPositionDB() *PositionDB {
	return &PositionDB{
		positions:  make(map[string]*PositionEntry),
		byCategory: make(map[PositionCategory][]*PositionEntry),
		byTag:      make(map[string][]*PositionEntry),
	}
}

// Add adds a position to the database. A missing ID is derived from the
// board and a missing category from ClassifyPosition.
func (db *PositionDB) Add(entry *PositionEntry) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if entry.ID == "" {
		entry.ID = entry.Board.PositionID()
	}
	if entry.Category == CategoryUnknown {
		entry.Category = ClassifyPosition(entry.Board)
	}
	entry.Race = Race(&entry.Board)

	db.positions[entry.ID] = entry
	db.byCategory[entry.Category] = append(db.byCategory[entry.Category], entry)
	for _, tag := range entry.Tags {
		db.byTag[tag] = append(db.byTag[tag], entry)
	}
}

// Get retrieves a position by ID.
func (db *PositionDB) Get(id string) *PositionEntry {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.positions[id]
}

// GetByCategory returns all positions in a category.
func (db *PositionDB) GetByCategory(cat PositionCategory) []*PositionEntry {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.byCategory[cat]
}

// GetByTag returns all positions with a given tag.
func (db *PositionDB) GetByTag(tag string) []*PositionEntry {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.byTag[tag]
}

// Search finds positions whose name, description or tags contain query,
// ignoring case. Results are sorted by name.
func (db *PositionDB) Search(query string) []*PositionEntry {
	q := strings.ToLower(query)
	return db.sorted(func(p *PositionEntry) bool {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			return true
		}
		return lo.ContainsBy(p.Tags, func(tag string) bool {
			return strings.Contains(strings.ToLower(tag), q)
		})
	})
}

// Count returns the total number of positions.
func (db *PositionDB) Count() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.positions)
}

// All returns all positions sorted by name.
func (db *PositionDB) All() []*PositionEntry {
	return db.sorted(func(*PositionEntry) bool { return true })
}

func (db *PositionDB) sorted(keep func(*PositionEntry) bool) []*PositionEntry {
	db.mu.RLock()
	defer db.mu.RUnlock()

	results := lo.Filter(lo.Values(db.positions), func(p *PositionEntry, _ int) bool { return keep(p) })
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results
}

// PositionSimilarity contains similarity information between two positions.
type PositionSimilarity struct {
	Entry      *PositionEntry
	Similarity float64 // 0.0 to 1.0
}

// FindSimilar finds catalogue positions similar to the given board,
// most similar first.
func (db *PositionDB) FindSimilar(board Board, maxResults int) []PositionSimilarity {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var results []PositionSimilarity
	for _, p := range db.positions {
		sim := boardSimilarity(board, p.Board)
		if sim > 0.5 {
			results = append(results, PositionSimilarity{Entry: p, Similarity: sim})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Entry.Name < results[j].Entry.Name
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// boardSimilarity returns the share of checkers two boards have in common,
// cell by cell and color by color.
func boardSimilarity(a, b Board) float64 {
	matches, total := 0, 0
	for pos := range a {
		for _, c := range []Color{Light, Dark} {
			ac, bc := 0, 0
			if a[pos].Occupant == c {
				ac = a[pos].Count
			}
			if b[pos].Occupant == c {
				bc = b[pos].Count
			}
			matches += min(ac, bc)
			total += max(ac, bc)
		}
	}
	if total == 0 {
		return 1.0
	}
	return float64(matches) / float64(total)
}

// ClassifyPosition determines the category of a position.
func ClassifyPosition(board Board) PositionCategory {
	if IsHome(&board, Light) || IsHome(&board, Dark) {
		return CategoryHome
	}

	lightHead := board[Light.HeadSlot()]
	darkHead := board[Dark.HeadSlot()]
	onHead := func(h Cell, c Color) int {
		if h.Occupant == c {
			return h.Count
		}
		return 0
	}
	l, d := onHead(lightHead, Light), onHead(darkHead, Dark)

	switch {
	case l == TotalPieces && d == TotalPieces:
		return CategoryOpening
	case l > 0 || d > 0:
		return CategoryDevelopment
	case board.PieceCount(Light) > 0 || board.PieceCount(Dark) > 0:
		return CategoryMidgame
	}
	return CategoryUnknown
}

// DefaultPositionDB creates a database with common reference positions.
func DefaultPositionDB() *PositionDB {
	db := NewPositionDB()

	db.Add(&PositionEntry{
		Name:        "Starting Position",
		Category:    CategoryOpening,
		Description: "Fifteen checkers on each head",
		Board:       InitialBoard(),
		Tags:        []string{"opening", "initial", "head"},
	})

	reference := []struct {
		name  string
		desc  string
		tags  []string
		cells map[int]Cell
	}{
		{"Blocked Order", "Only 5 then 3 plays; 3 then 5 is blocked by the dark checker on 3",
			[]string{"blocked", "dice order"},
			map[int]Cell{0: {Count: 1, Occupant: Light}, 3: {Count: 1, Occupant: Dark}}},
		{"No Legal Move", "Both dice blocked for light",
			[]string{"blocked", "pass"},
			map[int]Cell{0: {Count: 1, Occupant: Light}, 3: {Count: 1, Occupant: Dark}, 5: {Count: 1, Occupant: Dark}}},
		{"Dark Wrap", "Dark checker about to cross from 23 to 0",
			[]string{"wrap", "dark"},
			map[int]Cell{22: {Count: 1, Occupant: Dark}, 5: {Count: 1, Occupant: Light}}},
		{"Light Home", "All light checkers in the last quarter",
			[]string{"home", "endgame"},
			map[int]Cell{
				18: {Count: 5, Occupant: Light}, 20: {Count: 5, Occupant: Light}, 23: {Count: 5, Occupant: Light},
				2: {Count: 15, Occupant: Dark},
			}},
		{"Head Cleared", "Both heads empty, checkers spread over the track",
			[]string{"midgame"},
			map[int]Cell{
				3: {Count: 8, Occupant: Light}, 9: {Count: 7, Occupant: Light},
				15: {Count: 8, Occupant: Dark}, 21: {Count: 7, Occupant: Dark},
			}},
	}

	for _, rp := range reference {
		board, err := BoardFromCells(rp.cells)
		if err != nil {
			continue
		}
		db.Add(&PositionEntry{Name: rp.name, Description: rp.desc, Board: board, Tags: rp.tags})
	}

	return db
}
