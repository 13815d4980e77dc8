package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go-nextdoor-leads/internal/browser"
	"go-nextdoor-leads/internal/config"

	"github.com/charmbracelet/log"
)

func main() {
	path := config.Default().CookiesPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	fmt.Printf("🍪 Inspecting session file %s\n", path)

	cookies, err := browser.NewFileStore(path).Read()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Println("ℹ️ No saved session, the next run will log in.")
		return
	case errors.Is(err, browser.ErrSessionLoadCorrupt):
		log.Fatal("❌ Session file is corrupt, delete it to force a fresh login", "err", err)
	case err != nil:
		log.Fatal("❌ Failed to read session file", "err", err)
	}

	fmt.Printf("✅ Loaded %d cookies\n", len(cookies))

	now := time.Now()
	expired := 0
	for _, c := range cookies {
		state := "session"
		if c.Expires > 0 {
			exp := time.Unix(int64(c.Expires), 0)
			if exp.Before(now) {
				state = "EXPIRED"
				expired++
			} else {
				state = "expires " + exp.Format(time.DateTime)
			}
		}
		fmt.Printf("  %-32s %-24s secure=%-5t %s\n", c.Name, c.Domain, c.Secure, state)
	}

	if expired > 0 {
		fmt.Printf("⚠️ %d cookies have expired\n", expired)
	}
}
