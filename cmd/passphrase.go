package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/AnyUserName/imgcrypt-cli/internal/errs"
	"golang.org/x/term"
)

// Terminal hooks, replaced in tests.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// resolvePassphrase returns the -k value when it was given, otherwise
// prompts on the terminal behind fd. With confirm set the passphrase is
// asked twice and both entries must match.
func resolvePassphrase(value string, given bool, confirm bool, fd int, prompt io.Writer) ([]byte, error) {
	if given {
		if value == "" {
			return nil, errs.New("cli", "passphrase", errs.ErrInvalidKey, "passphrase is empty")
		}
		return []byte(value), nil
	}

	if !isTerminal(fd) {
		return nil, errs.New("cli", "passphrase", errs.ErrInvalidKey,
			"no passphrase: pass -k/--key or run from a terminal")
	}

	fmt.Fprint(prompt, "Passphrase: ")
	pass, err := readPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return nil, errs.Wrap("cli", "passphrase", errs.ErrInvalidKey, err)
	}
	if len(pass) == 0 {
		return nil, errs.New("cli", "passphrase", errs.ErrInvalidKey, "passphrase is empty")
	}
	if !confirm {
		return pass, nil
	}

	fmt.Fprint(prompt, "Confirm passphrase: ")
	again, err := readPassword(fd)
	fmt.Fprintln(prompt)
	defer zeroBytes(again)
	if err != nil {
		zeroBytes(pass)
		return nil, errs.Wrap("cli", "passphrase", errs.ErrInvalidKey, err)
	}
	if !bytes.Equal(pass, again) {
		zeroBytes(pass)
		return nil, errs.New("cli", "passphrase", errs.ErrInvalidKey, "passphrases do not match")
	}
	return pass, nil
}

// zeroBytes overwrites b so the passphrase does not linger in memory.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
