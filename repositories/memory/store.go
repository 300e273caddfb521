// Package memory provides an in-process implementation of the repository
// contracts, used by the memory store driver and by tests. A single mutex
// guards every mutation, so each operation (including relationship
// fan-out) is atomic to observers.
package memory

import (
	"sync"
	"time"

	"github.com/Dosada05/cricket-league/models"
)

type edge struct {
	left  string
	right string
}

type Store struct {
	mu sync.RWMutex

	users       map[string]*models.User
	teams       map[string]*models.Team
	players     map[string]*models.Player
	matches     map[string]*models.Match
	tournaments map[string]*models.Tournament

	// Single authoritative edge sets. The id lists on both sides of each
	// relationship are computed from these on read.
	teamPlayers     []edge // team id -> player id
	tournamentTeams []edge // tournament id -> team id

	order []string // insertion order of all entity ids, for stable listings
}

func NewStore() *Store {
	return &Store{
		users:       make(map[string]*models.User),
		teams:       make(map[string]*models.Team),
		players:     make(map[string]*models.Player),
		matches:     make(map[string]*models.Match),
		tournaments: make(map[string]*models.Tournament),
	}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (s *Store) track(id string) {
	s.order = append(s.order, id)
}

func (s *Store) hasEdge(edges []edge, left, right string) bool {
	for _, e := range edges {
		if e.left == left && e.right == right {
			return true
		}
	}
	return false
}

func dropEdges(edges []edge, keep func(edge) bool) []edge {
	out := edges[:0]
	for _, e := range edges {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func rightsOf(edges []edge, left string) []string {
	ids := make([]string, 0)
	for _, e := range edges {
		if e.left == left {
			ids = append(ids, e.right)
		}
	}
	return ids
}

func leftsOf(edges []edge, right string) []string {
	ids := make([]string, 0)
	for _, e := range edges {
		if e.right == right {
			ids = append(ids, e.left)
		}
	}
	return ids
}

func copyStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyScore(sc *models.Score) *models.Score {
	if sc == nil {
		return nil
	}
	v := *sc
	return &v
}
