// Generates the bcrypt hash and env lines for the admin identity.
//
//	hashpw <email> <password> [name]
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

const hashCost = 12

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: hashpw <email> <password> [name]")
		os.Exit(1)
	}

	email := os.Args[1]
	password := os.Args[2]
	name := "Admin User"
	if len(os.Args) > 3 {
		name = os.Args[3]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	fmt.Println("Add these to your environment:")
	fmt.Printf("ADMIN_EMAIL=%s\n", email)
	fmt.Printf("ADMIN_NAME=%s\n", name)
	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", string(hash))
}
