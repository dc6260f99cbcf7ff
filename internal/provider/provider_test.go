package provider

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestClassify(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		input    string
		provider string
		id       string
		typ      string
	}{
		{"https://youtu.be/ABC123", "youtube", "ABC123", TypeVideo},
		{"https://www.youtube.com/watch?v=ABC123", "youtube", "ABC123", TypeVideo},
		{"http://youtube.com/watch?v=ABC123&t=42s", "youtube", "ABC123", TypeVideo},
		{"https://www.youtube.com/embed/ABC123", "youtube", "ABC123", TypeVideo},
		{"https://www.youtube.com/v/ABC123?version=3", "youtube", "ABC123", TypeVideo},
		{"HTTPS://WWW.YOUTUBE.COM/watch?v=ABC123", "youtube", "ABC123", TypeVideo},
		{"//www.youtube-nocookie.com/embed/ABC123", "youtube", "ABC123", TypeVideo},
		{"https://youtu.be/ABC123#t=5", "youtube", "ABC123", TypeVideo},
		{"https://www.youtube.com/watch?v=ABC123&list=PL987", "youtube", "ABC123", TypeVideo},
		{"https://youtu.be/ABC123?list=PL987&index=2", "youtube", "ABC123", TypeVideo},
		{"https://www.youtube.com/playlist?list=PL987", "youtube", "list=PL987", TypeList},
		{"https://www.youtube.com/playlist?list=PL987#comments", "youtube", "list=PL987", TypeList},
		{"https://www.youtube.com/watch?v=&list=PL987", "youtube", "list=PL987", TypeList},
		{"//www.youtube-nocookie.com/embed?list=PL987&autoplay=1", "youtube", "list=PL987", TypeList},
		{"https://vimeo.com/12345", "vimeo", "12345", TypeVideo},
		{"http://www.vimeo.com/12345", "vimeo", "12345", TypeVideo},
		{"https://player.vimeo.com/video/12345", "vimeo", "12345", TypeVideo},
		{"https://player.vimeo.com/video/12345?autoplay=1", "vimeo", "12345", TypeVideo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, ok := reg.Classify(tt.input)
			if !ok {
				t.Fatalf("Classify(%q) found no match", tt.input)
			}
			if m.Provider != tt.provider || m.ID != tt.id || m.Type != tt.typ {
				t.Errorf("Classify(%q) = %+v, want {%s %s %s}", tt.input, m, tt.provider, tt.id, tt.typ)
			}
		})
	}
}

func TestClassifyNoMatch(t *testing.T) {
	reg := NewRegistry()

	for _, input := range []string{
		"hello world",
		"",
		"ABC123",
		"https://example.com/watch?v=ABC123",
		"https://vimeo.com/channels/staffpicks",
		"https://www.youtube.com/watch?v=",
	} {
		t.Run(input, func(t *testing.T) {
			if m, ok := reg.Classify(input); ok {
				t.Errorf("Classify(%q) = %+v, want no match", input, m)
			}
		})
	}
}

func TestGetIsSingleton(t *testing.T) {
	reg := NewRegistry()

	a, err := reg.Get("youtube")
	if err != nil {
		t.Fatalf("Get(youtube) error: %v", err)
	}
	b, err := reg.Get(" YouTube ")
	if err != nil {
		t.Fatalf("Get(YouTube) error: %v", err)
	}
	if a != b {
		t.Error("Get returned two different instances for the same provider")
	}
}

func TestGetUnknown(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Get("dailymotion")
	if err == nil {
		t.Fatal("Get(dailymotion) should fail")
	}
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("error %v should match ErrUnknownProvider", err)
	}
	var upe *UnknownProviderError
	if !errors.As(err, &upe) || upe.Name != "dailymotion" {
		t.Errorf("error %v should be an UnknownProviderError for dailymotion", err)
	}
}

func TestRegister(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register("YouTube", NewYouTube); err == nil {
		t.Error("registering a duplicate name should fail")
	}
	if err := reg.Register("", NewGeneric); err == nil {
		t.Error("registering an empty name should fail")
	}
	if err := reg.Register("custom", NewGeneric); err != nil {
		t.Fatalf("Register(custom) error: %v", err)
	}

	names := reg.Names()
	want := []string{"youtube", "vimeo", "generic", "custom"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestGetConcurrent(t *testing.T) {
	var calls atomic.Int32
	reg := NewRegistry()
	if err := reg.Register("counted", func() Provider {
		calls.Add(1)
		return NewGeneric()
	}); err != nil {
		t.Fatalf("Register(counted) error: %v", err)
	}

	const workers = 32
	got := make([]Provider, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := reg.Get("counted")
			if err != nil {
				t.Errorf("Get(counted) error: %v", err)
				return
			}
			got[i] = p
		}(i)
	}
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("factory called %d times, want 1", n)
	}
	for i := 1; i < workers; i++ {
		if got[i] != got[0] {
			t.Fatalf("goroutine %d got a different instance", i)
		}
	}
}

func TestGenericNeverMatches(t *testing.T) {
	g := NewGeneric()
	if _, ok := g.Match("https://example.com/player/1"); ok {
		t.Error("generic provider should not match during classification")
	}
	if got := g.EmbedURL("https://example.com/player/1", nil); got != "https://example.com/player/1" {
		t.Errorf("EmbedURL = %q", got)
	}
}

func TestEmbedURL(t *testing.T) {
	reg := NewRegistry()
	yt, _ := reg.Get("youtube")
	vimeo, _ := reg.Get("vimeo")
	generic, _ := reg.Get("generic")

	autoplay := []Param{{Name: "autoplay", Value: "1"}}
	two := []Param{{Name: "autoplay", Value: "1"}, {Name: "loop", Value: "1"}}

	tests := []struct {
		name string
		p    Provider
		id   string
		used []Param
		want string
	}{
		{"youtube video", yt, "ABC123", nil, "//www.youtube-nocookie.com/embed/ABC123"},
		{"youtube video params", yt, "ABC123", two, "//www.youtube-nocookie.com/embed/ABC123?autoplay=1&loop=1"},
		{"youtube list", yt, "list=PL987", nil, "//www.youtube-nocookie.com/embed?list=PL987"},
		{"youtube list params", yt, "list=PL987", autoplay, "//www.youtube-nocookie.com/embed?list=PL987&autoplay=1"},
		{"vimeo", vimeo, "12345", autoplay, "//player.vimeo.com/video/12345?autoplay=1"},
		{"generic with query", generic, "https://example.com/p?v=1", autoplay, "https://example.com/p?v=1&autoplay=1"},
		{"escaped value", vimeo, "12345", []Param{{Name: "player_id", Value: "a b&c"}}, "//player.vimeo.com/video/12345?player_id=a+b%26c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.EmbedURL(tt.id, tt.used); got != tt.want {
				t.Errorf("EmbedURL(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestParamsReturnsCopy(t *testing.T) {
	yt := NewYouTube()
	params := yt.Params()
	params.Params[0].Default = "changed"

	if yt.Params().Params[0].Default == "changed" {
		t.Error("Params() should not expose the provider's table")
	}
}
