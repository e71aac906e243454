// Command bakery-passwd prints a bcrypt hash for ADMIN_PASSWORD_HASH.
// The password is read from the first line of standard input.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/polkiloo/bakery/internal/pkg/auth"
)

func main() {
	if err := run(os.Stdin, os.Stdout, auth.NewBcryptHasher(0)); err != nil {
		fmt.Fprintf(os.Stderr, "bakery-passwd: %v\n", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer, hasher auth.PasswordHasher) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read password: %w", err)
	}

	hash, err := hasher.Hash(strings.TrimRight(line, "\r\n"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}
