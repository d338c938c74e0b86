package rpccfg

import (
	"bufio"
	"errors"
	"os"
	"strings"
)

// ErrMalformedCookie is returned when a cookie file does not hold a
// user:password pair.
var ErrMalformedCookie = errors.New("malformed cookie file")

// ReadCookieFile reads the user and password the node wrote to its auth
// cookie. Only the first line is considered.
func ReadCookieFile(path string) (string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Scan()
	if err := scanner.Err(); err != nil {
		return "", "", err
	}

	return parseCookie(scanner.Text())
}

func parseCookie(s string) (string, string, error) {
	user, pass, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || user == "" {
		return "", "", ErrMalformedCookie
	}

	return user, pass, nil
}
