package lexicon

import (
	"bufio"
	_ "embed"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed data/words.txt
var embeddedWords string

//go:embed data/blocked.txt
var embeddedBlocked string

// commonSingles are the only one-letter words accepted.
var commonSingles = map[string]bool{"A": true, "I": true}

// commonTwos is the whitelist of two-letter words. Any other two-letter
// entry in a word list is dropped.
var commonTwos = toSet(strings.Fields(`
	AA AB AD AE AG AH AI AL AM AN AR AS AT AW AX AY
	BA BE BI BO BY
	DA DE DO
	ED EF EH EL EM EN ER ES ET EW EX
	FA
	GO
	HA HE HI HM HO
	ID IF IN IS IT
	JO
	KA KI
	LA LI LO
	MA ME MI MM MO MU MY
	NA NE NO NU
	OD OE OF OH OI OM ON OP OR OS OW OX OY
	PA PE PI
	QI
	RE
	SH SI SO
	TA TE TI TO
	UH UM UN UP US UT
	WE WO
	XI XU
	YA YE YO
	ZA`))

// BonusWords are always legal and score a flat bonus instead of their
// letter values.
var BonusWords = map[string]int{"BATMAN": 100}

func toSet(words []string) map[string]bool {
	s := make(map[string]bool, len(words))
	for _, w := range words {
		s[w] = true
	}
	return s
}

// Normalize upper-cases a word. Its second return value reports whether the
// word consists only of the letters A-Z.
func Normalize(word string) (string, bool) {
	// A Caser is stateful, so each call gets its own.
	w := cases.Upper(language.Und).String(strings.TrimSpace(word))
	if w == "" {
		return w, false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return w, false
		}
	}
	return w, true
}

// readLines returns the first field of every non-empty, non-comment line.
func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.Fields(s)[0])
	}
	return out, sc.Err()
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLines(f)
}

// FilterWords applies the word list rules: A-Z only, single letters only A
// and I, two-letter words only from the whitelist, and nothing from the
// block list. The result is upper case and free of duplicates.
func FilterWords(raw []string, blocked []string) []string {
	block := make(map[string]bool, len(blocked))
	for _, b := range blocked {
		if w, ok := Normalize(b); ok {
			block[w] = true
		}
	}
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		w, ok := Normalize(r)
		if !ok || seen[w] || block[w] {
			continue
		}
		if len(w) == 1 && !commonSingles[w] {
			continue
		}
		if len(w) == 2 && !commonTwos[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
