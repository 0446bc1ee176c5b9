package main

import (
	"fmt"
	"time"

	"inkwell/pkg/config"
	"inkwell/pkg/database"
	"inkwell/pkg/logger"
	"inkwell/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []*models.User{
		{Username: "admin", Email: "admin@inkwell.test", Password: string(hash), Firstname: "Ada", Lastname: "Admin", Role: models.RoleAdmin},
		{Username: "edna_editor", Email: "edna@inkwell.test", Password: string(hash), Firstname: "Edna", Lastname: "Stone", Role: models.RoleEditor},
		{Username: "alice_writes", Email: "alice@inkwell.test", Password: string(hash), Firstname: "Alice", Lastname: "Hart", Role: models.RoleCreator},
		{Username: "bob_writes", Email: "bob@inkwell.test", Password: string(hash), Firstname: "Bob", Lastname: "Reed", Role: models.RoleCreator},
	}
	for _, u := range users {
		u.Status = models.UserActive
		if err := db.Create(u).Error; err != nil {
			return fmt.Errorf("creating user %s: %w", u.Username, err)
		}
		log.Info("Created user %s (%s)", u.Username, u.Role)
	}
	editor, alice, bob := users[1], users[2], users[3]

	categories := []*models.Category{
		{Name: "Fiction", Description: "Short stories and serialized fiction"},
		{Name: "Essays", Description: "Long-form non-fiction"},
		{Name: "Poetry", Description: "Verse in any form"},
	}
	for _, cat := range categories {
		if err := db.Create(cat).Error; err != nil {
			return fmt.Errorf("creating category %s: %w", cat.Name, err)
		}
		log.Info("Created category %s", cat.Name)
	}

	now := time.Now()

	draftWork := &models.Work{
		Title:      "Unfinished Letters",
		Content:    "A story still finding its shape.",
		AuthorID:   alice.ID,
		CategoryID: categories[0].ID,
		Tags:       []string{"wip"},
		Status:     models.WorkDraft,
	}
	if err := db.Create(draftWork).Error; err != nil {
		return err
	}

	submittedWork := &models.Work{
		Title:      "The Cartographer's Debt",
		Content:    "A mapmaker owes more than money.",
		AuthorID:   bob.ID,
		CategoryID: categories[0].ID,
		Tags:       []string{"adventure"},
		Status:     models.WorkSubmitted,
	}
	submittedWork.SubmittedAt = &now
	if err := db.Create(submittedWork).Error; err != nil {
		return err
	}

	publishedWork := &models.Work{
		Title:      "On Quiet Mornings",
		Content:    "An essay about the hour before the city wakes.",
		AuthorID:   alice.ID,
		CategoryID: categories[1].ID,
		Tags:       []string{"essay", "city"},
		Status:     models.WorkPublished,
	}
	publishedWork.SubmittedAt = &now
	publishedWork.ApprovedAt = &now
	publishedWork.PublishedAt = &now
	if err := db.Create(publishedWork).Error; err != nil {
		return err
	}
	log.Info("Created works: 1 draft, 1 submitted, 1 published")

	review := &models.Review{
		WorkID:   publishedWork.ID,
		EditorID: editor.ID,
		Decision: models.DecisionApproved,
		Feedback: "Clean prose, ready to go.",
	}
	if err := db.Create(review).Error; err != nil {
		return err
	}

	comment := &models.Comment{
		WorkID:   publishedWork.ID,
		UserID:   bob.ID,
		Username: bob.Username,
		Body:     "This captures the feeling exactly.",
		Status:   models.CommentVisible,
	}
	if err := db.Create(comment).Error; err != nil {
		return err
	}

	like := &models.Like{UserID: bob.ID, WorkID: publishedWork.ID}
	if err := db.Create(like).Error; err != nil {
		return err
	}

	draft := &models.Draft{
		Title:    "Unfinished Letters v2",
		Content:  "Second pass at the opening.",
		AuthorID: alice.ID,
		WorkID:   draftWork.ID,
	}
	if err := db.Create(draft).Error; err != nil {
		return err
	}

	log.Info("Created review, comment, like and draft for sample works")
	return nil
}
