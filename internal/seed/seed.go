package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"glimpse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	r       *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		//nolint:gosec // Weak random number generator is fine for seeding
		r: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Uses TRUNCATE CASCADE, so it only
// works against Postgres.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE saved_posts, likes, follows, stories, posts, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedSocialMesh creates n users and a follow graph where each user
// follows a handful of others.
func (s *Seeder) SeedSocialMesh(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	edges := 0
	for _, follower := range users {
		for _, target := range s.pickOthers(users, follower, 3+s.r.Intn(8)) {
			follow := &models.Follow{FollowerID: follower.ID, FolloweeID: target.ID}
			err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error
			if err != nil {
				return nil, fmt.Errorf("create follow: %w", err)
			}
			edges++
		}
	}
	log.Printf("created %d follow edges", edges)

	return users, nil
}

// SeedEngagement creates posts spread across the users, then sprinkles
// likes and saves over them.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to seed posts for")
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		owner := users[s.r.Intn(len(users))]
		post, err := s.factory.CreatePost(owner)
		if err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("created %d posts", len(posts))

	likes, saves := 0, 0
	for _, post := range posts {
		for _, user := range s.pickOthers(users, nil, s.r.Intn(len(users)/2+1)) {
			like := &models.Like{UserID: user.ID, PostID: post.ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
				return nil, fmt.Errorf("create like: %w", err)
			}
			likes++
		}
		if s.r.Intn(4) == 0 {
			user := users[s.r.Intn(len(users))]
			saved := &models.SavedPost{UserID: user.ID, PostID: post.ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(saved).Error; err != nil {
				return nil, fmt.Errorf("create saved post: %w", err)
			}
			saves++
		}
	}
	log.Printf("created %d likes, %d saves", likes, saves)

	return posts, nil
}

// SeedStories creates stories for roughly half of the users. Some of them
// are already expired (see Factory.CreateStory).
func (s *Seeder) SeedStories(users []*models.User) (int, error) {
	count := 0
	for _, user := range users {
		if s.r.Intn(2) == 0 {
			continue
		}
		for i := 0; i < 1+s.r.Intn(3); i++ {
			if _, err := s.factory.CreateStory(user); err != nil {
				return count, fmt.Errorf("create story: %w", err)
			}
			count++
		}
	}
	log.Printf("created %d stories", count)
	return count, nil
}

// pickOthers selects up to n distinct users, excluding the given one.
func (s *Seeder) pickOthers(users []*models.User, exclude *models.User, n int) []*models.User {
	perm := s.r.Perm(len(users))
	out := make([]*models.User, 0, n)
	for _, idx := range perm {
		if len(out) == n {
			break
		}
		if exclude != nil && users[idx].ID == exclude.ID {
			continue
		}
		out = append(out, users[idx])
	}
	return out
}
