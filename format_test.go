package docstrfmt

import (
	"errors"
	"testing"
)

// Sources with no docstring must round-trip byte for byte.
var identityCorpus = []string{
	"",
	"x = 1\n",
	"x = 1",
	"def f(x):\n    return x\n",
	"s = \"\"\"not a docstring\n  second line\n\"\"\"\n",
	"total = 1 + \\\n    2\n",
	"# comment\n\n\nif x:\n    # indented comment\n    pass\n",
	"values = [\n    \"\"\"triple in list\"\"\",\n    2,\n]\n",
	"class A:\n    x: int = 1\n\n    def m(self):\n        return 'ok'\n",
	"s = 'a\\'b'\nt = \"tab\\tstop\"\n",
	"def f():\n    r\"\"\"Raw docstrings pass through. Untouched\"\"\"\n",
	"def g(a,\n      b):\n    return a - b\n",
	"def f():\r\n    pass\r\n\r\nx = 1\r\n",
}

func TestFormatIdentityWithoutDocstrings(t *testing.T) {
	for _, src := range identityCorpus {
		got, err := Format(src)
		if err != nil {
			t.Fatalf("Format(%q): %v", src, err)
		}
		if got != src {
			t.Fatalf("Format(%q) = %q, want identity", src, got)
		}
	}
}

func TestFormatRewritesDocstring(t *testing.T) {
	src := "def f(x):\n" +
		"    \"\"\"Return x.\n" +
		"\n" +
		"    More info here.\n" +
		"    \"\"\"\n" +
		"    return x\n"
	want := "def f(x):\n" +
		"    \"\"\"Return x.\n" +
		"\n" +
		"    More info here.\n" +
		"\n" +
		"    \"\"\"\n" +
		"    return x\n"
	got, err := Format(src)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFormatRewritesDocstringAfterComment(t *testing.T) {
	src := "def f():\n" +
		"    # note\n" +
		"    \"\"\"Doc one. Doc two\"\"\"\n"
	want := "def f():\n" +
		"    # note\n" +
		"    \"\"\"Doc one.\n" +
		"\n" +
		"    Doc two\n" +
		"\n" +
		"    \"\"\"\n"
	got, err := Format(src)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFormatCollapsesEmptyDocstring(t *testing.T) {
	src := "def f():\n    \"\"\" \"\"\"\n    pass\n"
	want := "def f():\n    \n    pass\n"
	got, err := Format(src)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFormatTabIndentedDocstring(t *testing.T) {
	src := "def f():\n\t\"\"\"One thing. And another\"\"\"\n"
	want := "def f():\n\t\"\"\"One thing.\n\n\tAnd another\n\n\t\"\"\"\n"
	got, err := Format(src)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFormatIgnoresModuleLevelString(t *testing.T) {
	src := "\"\"\"Module header. Stays as it is\"\"\"\nx = 1\n"
	got, err := Format(src)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != src {
		t.Fatalf("module-level string was modified: %q", got)
	}
}

func TestFormatIdempotent(t *testing.T) {
	corpus := append([]string{}, identityCorpus...)
	corpus = append(corpus,
		"def f(x):\n    \"\"\"Return x.\n\n    More info here.\n    \"\"\"\n    return x\n",
		"def f():\n    \"\"\" \"\"\"\n    pass\n",
		"def f():\n    '''does a thing. returns nothing'''\n",
		"class A:\n    def m(self):\n        \"\"\"Summary line\n        spilling over. With details\"\"\"\n        pass\n",
	)
	for _, src := range corpus {
		once, err := Format(src)
		if err != nil {
			t.Fatalf("Format(%q): %v", src, err)
		}
		twice, err := Format(once)
		if err != nil {
			t.Fatalf("Format(Format(%q)): %v", src, err)
		}
		if twice != once {
			t.Fatalf("not idempotent for %q:\nonce  %q\ntwice %q", src, once, twice)
		}
	}
}

func TestFormatTokenizationErrors(t *testing.T) {
	cases := []struct {
		src  string
		want error
	}{
		{"s = 'abc\n", ErrUnterminatedString},
		{"s = \"\"\"never closed\n", ErrUnterminatedString},
		{"if x:\n        a = 1\n    b = 2\n", ErrInconsistentIndent},
	}
	for _, c := range cases {
		if _, err := Format(c.src); !errors.Is(err, c.want) {
			t.Fatalf("Format(%q) err = %v, want %v", c.src, err, c.want)
		}
	}
}
