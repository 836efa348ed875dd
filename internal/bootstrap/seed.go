package bootstrap

import (
	"log"

	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Skill{},
		&model.Tech{},
		&model.Project{},
		&model.ProjectTech{},
		&model.ProjectContributor{},
		&model.Blog{},
		&model.Learning{},
	)
}

// SeedRootUser creates the bootstrap ROOT account in development so role
// management has a starting point. Production roots are promoted manually.
func SeedRootUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("role = ?", model.RoleRoot).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Root user already exists, skipping seed")
		return nil
	}

	password := "root1234"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	rootUser := model.User{
		FullName:     "Root",
		Email:        "root@devhub.local",
		PasswordHash: string(hashedPasswordBytes),
		Role:         model.RoleRoot,
	}

	if err := db.Create(&rootUser).Error; err != nil {
		return err
	}

	log.Println("Root user seeded successfully")
	log.Println("   Email: root@devhub.local")
	log.Println("   Password: root1234")

	return nil
}
