package security

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Limits bounds user-supplied strings before they reach file or network
// operations.
type Limits struct {
	MaxString int // generic string max length (flag values, requirement names)
	MaxPath   int // file path max length
}

func DefaultLimits() Limits {
	return Limits{
		MaxString: 4096,
		MaxPath:   4096,
	}
}

// ValidateString rejects strings with invalid UTF-8, NUL bytes, control
// runes, or excessive length. Empty strings always pass.
func ValidateString(name, s string, lim Limits) error {
	if s == "" {
		return nil
	}
	if !utf8.ValidString(s) {
		return fmt.Errorf("%s: invalid UTF-8", name)
	}
	if strings.ContainsRune(s, '\x00') {
		return fmt.Errorf("%s: contains NUL byte", name)
	}
	if utf8.RuneCountInString(s) > lim.MaxString {
		return fmt.Errorf("%s: too long (%d > %d)", name, utf8.RuneCountInString(s), lim.MaxString)
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return fmt.Errorf("%s: contains non-printable/control runes", name)
		}
	}
	return nil
}

// ValidatePath applies the string checks with the path length limit.
func ValidatePath(name, s string, lim Limits) error {
	if s == "" {
		return nil
	}
	if utf8.RuneCountInString(s) > lim.MaxPath {
		return fmt.Errorf("%s: path too long (%d > %d)", name, utf8.RuneCountInString(s), lim.MaxPath)
	}
	return ValidateString(name, s, lim)
}

// AttachRecursive installs flag and argument validation on cmd and every
// subcommand, running before any existing PersistentPreRunE.
func AttachRecursive(root *cobra.Command, lim Limits) {
	attach(root, lim)
	for _, c := range root.Commands() {
		AttachRecursive(c, lim)
	}
}

func attach(cmd *cobra.Command, lim Limits) {
	prev := cmd.PersistentPreRunE
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		if err := validateFlagsAndArgs(c, args, lim); err != nil {
			return err
		}
		if prev != nil {
			return prev(c, args)
		}
		return nil
	}
}

func validateFlagsAndArgs(cmd *cobra.Command, args []string, lim Limits) error {
	for i, a := range args {
		if err := ValidatePath(fmt.Sprintf("arg[%d]", i), a, lim); err != nil {
			return err
		}
	}

	var firstErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if firstErr != nil {
			return
		}
		name := fmt.Sprintf("flag --%s", f.Name)

		isPathy := strings.Contains(f.Name, "dir") ||
			strings.Contains(f.Name, "file") ||
			strings.Contains(f.Name, "config")

		switch f.Value.Type() {
		case "string":
			val, _ := cmd.Flags().GetString(f.Name)
			if val == "" {
				return
			}
			if isPathy {
				firstErr = ValidatePath(name, val, lim)
			} else {
				firstErr = ValidateString(name, val, lim)
			}
		case "stringSlice":
			vals, _ := cmd.Flags().GetStringSlice(f.Name)
			for i, v := range vals {
				if v == "" {
					continue
				}
				firstErr = ValidateString(fmt.Sprintf("%s[%d]", name, i), v, lim)
				if firstErr != nil {
					return
				}
			}
		default:
			// non-string flag types carry no free-form input
		}
	})
	return firstErr
}
