package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	PasswordMinLength = 8

	// PasswordMaxBytes is the longest input bcrypt will hash.
	PasswordMaxBytes = 72

	// MaxSimilarity is the ratio above which a password is considered too
	// close to the username.
	MaxSimilarity = 0.7
)

var nonWord = regexp.MustCompile(`\W+`)

// A short list of the passwords seen most often in breach corpora.
var commonPasswords = map[string]struct{}{}

func init() {
	for _, p := range strings.Fields(`
		123456 password 12345678 qwerty 123456789 12345 1234 111111 1234567 dragon
		123123 baseball abc123 football monkey letmein 696969 shadow master 666666
		qwertyuiop 123321 mustang 1234567890 michael 654321 superman 1qaz2wsx 7777777
		121212 000000 qazwsx 123qwe killer trustno1 jordan jennifer zxcvbnm asdfgh
		hunter buster soccer harley batman andrew tigger sunshine iloveyou 2000
		charlie robert thomas hockey ranger daniel starwars klaster 112233 george
		computer michelle jessica pepper 1111 zxcvbn 555555 11111111 131313 freedom
		777777 pass maggie 159753 aaaaaa ginger princess joshua cheese amanda summer
		love ashley nicole chelsea biteme matthew access yankees 987654321 dallas
		austin thunder taylor matrix welcome welcome1 password1 password123 admin
		admin123 passw0rd qwerty123 iloveyou1 abcd1234 changeme secret letmein1
	`) {
		commonPasswords[p] = struct{}{}
	}
}

// PasswordProblems applies the password rules and returns one message per
// violated rule.
func PasswordProblems(password, username string) []string {
	var problems []string

	if username != "" && tooSimilar(password, username) {
		problems = append(problems, "The password is too similar to the username.")
	}
	if utf8.RuneCountInString(password) < PasswordMinLength {
		problems = append(problems, fmt.Sprintf(
			"This password is too short. It must contain at least %d characters.", PasswordMinLength))
	}
	if len(password) > PasswordMaxBytes {
		problems = append(problems, fmt.Sprintf(
			"This password is too long. It must contain at most %d bytes.", PasswordMaxBytes))
	}
	if _, ok := commonPasswords[strings.ToLower(strings.TrimSpace(password))]; ok {
		problems = append(problems, "This password is too common.")
	}
	if password != "" && isNumeric(password) {
		problems = append(problems, "This password is entirely numeric.")
	}

	return problems
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// tooSimilar compares the password with the username and each of its
// word parts.
func tooSimilar(password, username string) bool {
	pw := strings.ToLower(password)
	parts := append([]string{username}, nonWord.Split(username, -1)...)
	for _, part := range parts {
		part = strings.ToLower(part)
		if part == "" {
			continue
		}
		if !canReach(pw, part) {
			continue
		}
		if similarity(pw, part) >= MaxSimilarity {
			return true
		}
	}
	return false
}

// canReach reports whether the lengths alone allow a ratio of MaxSimilarity.
// At best every rune of the shorter string matches.
func canReach(a, b string) bool {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la+lb == 0 {
		return true
	}
	return 2*float64(min(la, lb))/float64(la+lb) >= MaxSimilarity
}

// similarity returns the Ratcliff/Obershelp ratio of a and b in [0, 1].
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(ra, rb)) / float64(total)
}

func matchingRunes(a, b []rune) int {
	i, j, size := longestCommonRun(a, b)
	if size == 0 {
		return 0
	}
	return size + matchingRunes(a[:i], b[:j]) + matchingRunes(a[i+size:], b[j+size:])
}

func longestCommonRun(a, b []rune) (int, int, int) {
	bestI, bestJ, best := 0, 0, 0
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > best {
					best = cur[j]
					bestI, bestJ = i-best, j-best
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return bestI, bestJ, best
}
