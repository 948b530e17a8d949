package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// MaxDays bounds how far back generated publication dates reach.
	MaxDays int
	// SkipBcrypt stores plain passwords for fast local runs. Never use
	// outside development.
	SkipBcrypt bool
}

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// builtinCategories are the fixed topics every seeded database starts with.
// The last one stays unpublished so hidden-category behavior is exercisable
// out of the box.
var builtinCategories = []models.Category{
	{Title: "Travel", Slug: "travel", Description: "Trips, routes, and places worth the detour.", IsPublished: true},
	{Title: "Food", Slug: "food", Description: "Recipes, restaurants, and everything edible.", IsPublished: true},
	{Title: "Technology", Slug: "technology", Description: "Tools, software, and the occasional rant.", IsPublished: true},
	{Title: "Books", Slug: "books", Description: "What we are reading and why.", IsPublished: true},
	{Title: "Outdoors", Slug: "outdoors", Description: "Hikes, camps, and open skies.", IsPublished: true},
	{Title: "Drafts Corner", Slug: "drafts-corner", Description: "An unlisted staging ground.", IsPublished: false},
}

var builtinLocations = []models.Location{
	{Name: "Lisbon", IsPublished: true},
	{Name: "Kyoto", IsPublished: true},
	{Name: "Oaxaca", IsPublished: true},
	{Name: "Tbilisi", IsPublished: true},
	{Name: "Reykjavik", IsPublished: true},
	{Name: "Atlantis", IsPublished: false},
}

// ClearAll removes all seedable data. Deletion order respects foreign keys.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Comment{},
		&models.Post{},
		&models.Category{},
		&models.Location{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// Taxonomy inserts the built-in categories and locations, skipping any that
// already exist so repeated runs stay idempotent.
func (s *Seeder) Taxonomy() ([]models.Category, []models.Location, error) {
	var categories []models.Category
	for _, c := range builtinCategories {
		var existing models.Category
		err := s.db.Where("slug = ?", c.Slug).First(&existing).Error
		switch {
		case err == nil:
			categories = append(categories, existing)
			continue
		case err != gorm.ErrRecordNotFound:
			return nil, nil, err
		}
		category := c
		if err := s.db.Create(&category).Error; err != nil {
			return nil, nil, fmt.Errorf("creating category %q: %w", c.Slug, err)
		}
		categories = append(categories, category)
	}

	var locations []models.Location
	for _, l := range builtinLocations {
		var existing models.Location
		err := s.db.Where("name = ?", l.Name).First(&existing).Error
		switch {
		case err == nil:
			locations = append(locations, existing)
			continue
		case err != gorm.ErrRecordNotFound:
			return nil, nil, err
		}
		location := l
		if err := s.db.Create(&location).Error; err != nil {
			return nil, nil, fmt.Errorf("creating location %q: %w", l.Name, err)
		}
		locations = append(locations, location)
	}

	return categories, locations, nil
}

// Users creates n demo users.
func (s *Seeder) Users(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// Posts creates n posts spread over the given users and taxonomy. Roughly a
// fifth of the posts get no category and a third no location, so the
// nullable associations stay represented in demo data.
func (s *Seeder) Posts(users []*models.User, categories []models.Category, locations []models.Location, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to author posts")
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.factory.rng.Intn(len(users))]

		var category *models.Category
		if len(categories) > 0 && s.factory.rng.Intn(5) != 0 {
			category = &categories[s.factory.rng.Intn(len(categories))]
		}
		var location *models.Location
		if len(locations) > 0 && s.factory.rng.Intn(3) != 0 {
			location = &locations[s.factory.rng.Intn(len(locations))]
		}

		posts = append(posts, s.factory.BuildPost(author, category, location))
	}

	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("creating posts: %w", err)
	}
	return posts, nil
}

// Comments sprinkles up to perPost comments on each post.
func (s *Seeder) Comments(users []*models.User, posts []*models.Post, perPost int) (int, error) {
	total := 0
	for _, post := range posts {
		for i := 0; i < s.factory.rng.Intn(perPost+1); i++ {
			author := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(author, post); err != nil {
				return total, fmt.Errorf("commenting on post %d: %w", post.ID, err)
			}
			total++
		}
	}
	return total, nil
}

// Run executes a full seeding pass according to the options the Seeder was
// built with.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	categories, locations, err := s.Taxonomy()
	if err != nil {
		return err
	}
	log.Printf("seeded %d categories, %d locations", len(categories), len(locations))

	users, err := s.Users(opts.NumUsers)
	if err != nil {
		return err
	}
	log.Printf("seeded %d users", len(users))

	posts, err := s.Posts(users, categories, locations, opts.NumPosts)
	if err != nil {
		return err
	}
	log.Printf("seeded %d posts", len(posts))

	comments, err := s.Comments(users, posts, 5)
	if err != nil {
		return err
	}
	log.Printf("seeded %d comments", comments)

	return nil
}
