package cmd

import (
	"strings"

	"github.com/spf13/pflag"
)

// stripUnknownFlags drops flag tokens fs does not define. Only the flag token
// itself is removed; the token after it stays a positional. Values of known
// flags are kept with their flag, and everything after "--" is left as is.
func stripUnknownFlags(fs *pflag.FlagSet, args []string) []string {
	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(kept, args[i:]...)
		case strings.HasPrefix(arg, "--"):
			name, _, hasValue := strings.Cut(arg[2:], "=")
			flag := fs.Lookup(name)
			if flag == nil {
				continue
			}
			kept = append(kept, arg)
			if !hasValue && takesValue(flag) && i+1 < len(args) {
				i++
				kept = append(kept, args[i])
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			short, consumesNext, ok := knownShorthands(fs, arg[1:])
			if !ok {
				continue
			}
			kept = append(kept, "-"+short)
			if consumesNext && i+1 < len(args) {
				i++
				kept = append(kept, args[i])
			}
		default:
			kept = append(kept, arg)
		}
	}
	return kept
}

// knownShorthands filters a shorthand cluster such as "vx" down to the
// letters fs defines. A letter taking a value ends the cluster; the rest of
// the token is its value, or the next token when nothing follows.
func knownShorthands(fs *pflag.FlagSet, cluster string) (string, bool, bool) {
	var b strings.Builder
	for i := 0; i < len(cluster); i++ {
		flag := fs.ShorthandLookup(cluster[i : i+1])
		if flag == nil {
			continue
		}
		b.WriteByte(cluster[i])
		if takesValue(flag) {
			rest := cluster[i+1:]
			b.WriteString(rest)
			return b.String(), rest == "", true
		}
	}
	return b.String(), false, b.Len() > 0
}

func takesValue(flag *pflag.Flag) bool {
	return flag.NoOptDefVal == ""
}
