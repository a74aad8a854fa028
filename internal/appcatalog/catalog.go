package appcatalog

import (
	"sort"
	"strings"
	"sync"
)

// App is a catalog entry describing a known advertised application.
type App struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Platform    string   `json:"platform"`
	Rating      float64  `json:"rating"`
	Downloads   string   `json:"downloads"`
	Price       string   `json:"price"`
	Developer   string   `json:"developer"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Statistics summarizes the catalog contents.
type Statistics struct {
	TotalApps  int            `json:"total_apps"`
	Categories map[string]int `json:"categories"`
	Platforms  map[string]int `json:"platforms"`
}

// Catalog is an in-memory registry of known apps, seeded with defaults and
// extendable at runtime.
type Catalog struct {
	mu   sync.RWMutex
	apps map[string]App
}

func NewCatalog() *Catalog {
	c := &Catalog{apps: make(map[string]App)}
	for _, app := range defaultApps() {
		c.apps[app.ID] = app
	}
	return c
}

func defaultApps() []App {
	return []App{
		{
			ID:          "997700435",
			Name:        "Bubble Pop - Shoot Bubbles",
			Category:    "Puzzle Games",
			Subcategory: "Bubble Shooter",
			Platform:    "iOS",
			Rating:      4.2,
			Downloads:   "1M+",
			Price:       "Free",
			Developer:   "Pop Games Studio",
			Description: "Classic bubble shooter game with colorful graphics",
			Tags:        []string{"puzzle", "bubble", "casual", "family"},
		},
		{
			ID:          "997362197",
			Name:        "InShot - Video Editor",
			Category:    "Productivity",
			Subcategory: "Video Editing",
			Platform:    "iOS",
			Rating:      4.5,
			Downloads:   "10M+",
			Price:       "Free",
			Developer:   "InShot Inc.",
			Description: "Professional video editor with filters and effects",
			Tags:        []string{"video", "editing", "social media", "filters"},
		},
		{
			ID:          "993090598",
			Name:        "Ludo King",
			Category:    "Board Games",
			Subcategory: "Classic Board",
			Platform:    "iOS",
			Rating:      4.1,
			Downloads:   "50M+",
			Price:       "Free",
			Developer:   "Gametion Technologies",
			Description: "Classic Ludo board game with multiplayer",
			Tags:        []string{"board", "multiplayer", "classic", "family"},
		},
		{
			ID:          "Wt0m9nSXAGYByPqs",
			Name:        "Road Gold",
			Category:    "Racing Games",
			Subcategory: "Arcade Racing",
			Platform:    "Android",
			Rating:      4.3,
			Downloads:   "5M+",
			Price:       "Free",
			Developer:   "Racing Studio",
			Description: "High-speed racing with gold collection",
			Tags:        []string{"racing", "arcade", "speed", "gold"},
		},
	}
}

// Get returns one app by ID.
func (c *Catalog) Get(id string) (App, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	app, ok := c.apps[id]
	return app, ok
}

// List returns all apps sorted by name.
func (c *Catalog) List() []App {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make([]App, 0, len(c.apps))
	for _, app := range c.apps {
		res = append(res, app)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// ByCategory returns all apps in a category, sorted by name.
func (c *Catalog) ByCategory(category string) []App {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var res []App
	for _, app := range c.apps {
		if strings.EqualFold(app.Category, category) {
			res = append(res, app)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// Categories returns the sorted distinct category names.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	set := make(map[string]struct{})
	for _, app := range c.apps {
		if app.Category != "" {
			set[app.Category] = struct{}{}
		}
	}
	res := make([]string, 0, len(set))
	for cat := range set {
		res = append(res, cat)
	}
	sort.Strings(res)
	return res
}

// Search matches the query against app names, descriptions and tags,
// case-insensitively.
func (c *Catalog) Search(query string) []App {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	var res []App
	for _, app := range c.apps {
		if strings.Contains(strings.ToLower(app.Name), q) ||
			strings.Contains(strings.ToLower(app.Description), q) ||
			strings.Contains(strings.ToLower(strings.Join(app.Tags, " ")), q) {
			res = append(res, app)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// Upsert adds or replaces a catalog entry.
func (c *Catalog) Upsert(app App) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apps[app.ID] = app
}

// Statistics returns per-category and per-platform counts.
func (c *Catalog) Statistics() Statistics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stats := Statistics{
		TotalApps:  len(c.apps),
		Categories: make(map[string]int),
		Platforms:  make(map[string]int),
	}
	for _, app := range c.apps {
		category := app.Category
		if category == "" {
			category = "Unknown"
		}
		platform := app.Platform
		if platform == "" {
			platform = "Unknown"
		}
		stats.Categories[category]++
		stats.Platforms[platform]++
	}
	return stats
}
