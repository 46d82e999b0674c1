// Command hash-generator prints bcrypt hashes suitable for seeding the
// users.password_hash column.
//
// Passwords are taken from the arguments, or one per line from stdin when
// no arguments are given.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/ukp-platform/ukp-api/internal/service/auth"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("hash-generator", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	cost := fs.Int("cost", auth.DefaultBcryptCost, "bcrypt work factor")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	passwords := fs.Args()
	if len(passwords) == 0 {
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				passwords = append(passwords, line)
			}
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(stderr, "failed to read passwords: %v\n", err)
			return 1
		}
	}

	hasher := auth.NewBcryptHasher(*cost)
	code := 0
	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(stderr, "failed to hash password: %v\n", err)
			code = 1
			continue
		}
		fmt.Fprintln(stdout, hash)
	}
	return code
}
