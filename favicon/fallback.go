package favicon

// Fallback produces the last-resort favicon URL for a server when no
// strategy finds one. It is either a constant URL reused for every
// input or a function of the server name. Both forms are total: a
// valid Fallback never fails and performs no I/O itself.
type Fallback struct {
	constant string
	compute  func(server string) string
}

// Constant returns a Fallback that yields the same URL for every input.
func Constant(url string) Fallback {
	return Fallback{constant: url}
}

// Computed returns a Fallback that derives the URL from the server name.
func Computed(fn func(server string) string) Fallback {
	return Fallback{compute: fn}
}

// DuckDuckGo returns a Fallback backed by the DuckDuckGo icon service.
func DuckDuckGo() Fallback {
	return Computed(func(server string) string {
		return "https://icons.duckduckgo.com/ip3/" + server + ".ico"
	})
}

// GoogleS2 returns a Fallback backed by Google's s2 favicon service.
func GoogleS2() Fallback {
	return Computed(func(server string) string {
		return "https://www.google.com/s2/favicons?domain=" + server
	})
}

func (f Fallback) valid() bool {
	return f.constant != "" || f.compute != nil
}

func (f Fallback) resolve(server string) string {
	if f.compute != nil {
		return f.compute(server)
	}
	return f.constant
}
