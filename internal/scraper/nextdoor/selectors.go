package nextdoor

// Nextdoor DOM selectors and URLs.
// Kept in one place because the site changes its markup; update these when scraping breaks.

const (
	SourceName = "Nextdoor"

	LoginURL = "https://nextdoor.co.uk/login/"
	FeedURL  = "https://nextdoor.co.uk/news_feed/"

	// Login form
	EmailInput    = `#id_email`
	PasswordInput = `#id_password`
	SubmitButton  = `#signin_button`

	// Feed content marker, one per rendered post body
	PostText = `[data-testid="styled-text"]`
)

type Selectors struct {
	Email    string
	Password string
	Submit   string
	Post     string
}

// DefaultSelectors returns the built-in selectors
func DefaultSelectors() Selectors {
	return Selectors{
		Email:    EmailInput,
		Password: PasswordInput,
		Submit:   SubmitButton,
		Post:     PostText,
	}
}

// orDefault fills empty fields from DefaultSelectors
func (s Selectors) orDefault() Selectors {
	d := DefaultSelectors()
	if s.Email == "" {
		s.Email = d.Email
	}
	if s.Password == "" {
		s.Password = d.Password
	}
	if s.Submit == "" {
		s.Submit = d.Submit
	}
	if s.Post == "" {
		s.Post = d.Post
	}
	return s
}
