package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := initGorm(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"user_projects", "users", "employees", "projects"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		employees := []struct {
			EmpID string
			Name  string
			Email string
		}{
			{"EMP001", "Andi Wijaya", "andi@mail.com"},
			{"EMP002", "Budi Santoso", "budi@mail.com"},
			{"EMP003", "Citra Lestari", "citra@mail.com"},
			{"EMP004", "Dewi Anggraini", "dewi@mail.com"},
		}

		for _, e := range employees {
			var exists int
			row := db.Raw("SELECT 1 FROM employees WHERE emp_id = ?", e.EmpID).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec("INSERT INTO employees (emp_id, name, email, synced_at) VALUES (?, ?, ?, now())", e.EmpID, e.Name, e.Email).Error; err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.EmpID, err)
			}
			fmt.Printf("Seeded employee: %s (%s)\n", e.Name, e.EmpID)
		}

		projects := []struct {
			ID       string
			Name     string
			ParentID *string
			Position int
		}{
			{"harbor", "Harbor Expansion", nil, 0},
			{"harbor-dredging", "Dredging Works", strPtr("harbor"), 1},
			{"harbor-quay", "Quay Wall", strPtr("harbor"), 2},
			{"tower", "Tower Construction", nil, 3},
			{"tower-foundation", "Foundation", strPtr("tower"), 4},
			{"tower-structure", "Superstructure", strPtr("tower"), 5},
			{"tower-facade", "Facade", strPtr("tower"), 6},
			{"survey", "Site Survey", nil, 7},
		}

		for _, p := range projects {
			var exists int
			row := db.Raw("SELECT 1 FROM projects WHERE id = ?", p.ID).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec("INSERT INTO projects (id, name, parent_id, position, created_at) VALUES (?, ?, ?, ?, now())", p.ID, p.Name, p.ParentID, p.Position).Error; err != nil {
				log.Fatalf("failed to insert project %s: %v", p.ID, err)
			}
			fmt.Printf("Seeded project: %s\n", p.Name)
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		adminUsername := "admin"
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE LOWER(username) = LOWER(?)", adminUsername).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("admin user already exists; nothing to do")
			return
		}

		if err := db.Exec("INSERT INTO users (name, username, emp_id, email, role, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, true, now(), now())",
			"Andi Wijaya", adminUsername, "EMP001", "andi@mail.com", "Admin", string(hash)).Error; err != nil {
			log.Fatalf("failed to insert admin user: %v", err)
		}
		fmt.Println("Seeded admin user:", adminUsername)

		var adminUserID int64
		if err := db.Raw("SELECT id FROM users WHERE LOWER(username) = LOWER(?)", adminUsername).Row().Scan(&adminUserID); err != nil {
			log.Fatalf("failed to lookup admin user id: %v", err)
		}

		for i, p := range projects {
			if err := db.Exec("INSERT INTO user_projects (user_id, project_id, position, created_at) VALUES (?, ?, ?, now())", adminUserID, p.ID, i).Error; err != nil {
				log.Fatalf("failed to assign project %s to admin user: %v", p.ID, err)
			}
		}
		fmt.Println("Assigned all projects to admin user")
	},
}

func strPtr(s string) *string {
	return &s
}
