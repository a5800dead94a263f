// cmd/seeduser/main.go — writes a demo super admin into the state snapshot.
// Usage: go run ./cmd/seeduser [snapshot-path]
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	path := "data/state.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	username := "admin"
	password := "1234"

	st, err := store.LoadSnapshot(path)
	if err != nil {
		log.Fatalf("load snapshot: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	now := time.Now()
	admin := model.User{
		ID:           uuid.New(),
		Username:     username,
		FullName:     "Super Admin Demo",
		Email:        "admin@kazumi.local",
		PasswordHash: string(hash),
		Role:         model.RoleSuperAdmin,
		IsApproved:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	replaced := false
	for i := range st.Users {
		if st.Users[i].Username == username {
			admin.ID = st.Users[i].ID
			st.Users[i] = admin
			replaced = true
			break
		}
	}
	if !replaced {
		st.Users = append(st.Users, admin)
	}

	if err := store.WriteSnapshot(path, st); err != nil {
		log.Fatalf("write snapshot: %v", err)
	}
	fmt.Printf("user %q created/updated with password %q in %s\n", username, password, path)
}
