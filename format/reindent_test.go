package format

import (
	"strings"
	"testing"

	"github.com/dhamidi/smartenter/repair"
	"github.com/dhamidi/smartenter/text"
)

func TestReindent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "nested blocks and case bodies",
			input: `class A {
void m() {
if (x)
foo();
int y =
1;
switch (y) {
case 1:
bar();
break;
default:
baz();
}
}
}`,
			expected: `class A {
    void m() {
        if (x)
            foo();
        int y =
            1;
        switch (y) {
            case 1:
                bar();
                break;
            default:
                baz();
        }
    }
}`,
		},
		{
			name:     "whitespace-only lines are kept",
			input:    "class A {\n  \nint x;\n}",
			expected: "class A {\n  \n    int x;\n}",
		},
		{
			name:     "comment interiors are kept",
			input:    "class A {\n/*\n * doc\n */\nint x; // c\n}",
			expected: "class A {\n    /*\n * doc\n */\n    int x; // c\n}",
		},
		{
			name:     "annotation lines do not continue",
			input:    "class A {\n@Override\npublic String toString() {\nreturn \"\";\n}\n}",
			expected: "class A {\n    @Override\n    public String toString() {\n        return \"\";\n    }\n}",
		},
		{
			name:     "argument continuation",
			input:    "foo(a,\nb);",
			expected: "foo(a,\n    b);",
		},
		{
			name:     "lambda body inside arguments",
			input:    "run(() -> {\nwork();\n});",
			expected: "run(() -> {\n    work();\n});",
		},
		{
			name:     "wrapped condition",
			input:    "class A {\nvoid m() {\nif (a &&\nb) {\nc();\n}\n}\n}",
			expected: "class A {\n    void m() {\n        if (a &&\n            b) {\n            c();\n        }\n    }\n}",
		},
		{
			name:     "arrow switch",
			input:    "switch (x) {\ncase 1 -> {\na();\n}\ndefault -> b();\n}",
			expected: "switch (x) {\n    case 1 -> {\n        a();\n    }\n    default -> b();\n}",
		},
		{
			name:     "unclosed parenthesis does not leak",
			input:    "class A {\nvoid m() {\nif (x > 0\n}\nint y;\n}",
			expected: "class A {\n    void m() {\n        if (x > 0\n    }\n    int y;\n}",
		},
		{
			name:     "simple blocks stay on one line",
			input:    "class A {\nvoid m() {}\n}",
			expected: "class A {\n    void m() {}\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reindent([]byte(tt.input), repair.DefaultStyle())
			if err != nil {
				t.Fatalf("Reindent: %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.expected)
			}
		})
	}
}

func TestReindentExpandsSimpleBlocks(t *testing.T) {
	style := repair.DefaultStyle()
	style.KeepSimpleBlocksInOneLine = false

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"method body", "class A {\nvoid m() {}\n}", "class A {\n    void m() {\n    }\n}"},
		{"class body", "class A { }", "class A {\n}"},
		{"lambda body", "r = () -> {};", "r = () -> {\n};"},
		{"array initialiser", "class A {\nint[] a = {};\n}", "class A {\n    int[] a = {};\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reindent([]byte(tt.input), style)
			if err != nil {
				t.Fatalf("Reindent: %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestReindentTabs(t *testing.T) {
	style := repair.DefaultStyle()
	style.UseTabs = true
	got, err := Reindent([]byte("class A {\nvoid m() {\nfoo();\n}\n}"), style)
	if err != nil {
		t.Fatal(err)
	}
	want := "class A {\n\tvoid m() {\n\t\tfoo();\n\t}\n}"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReformatRange(t *testing.T) {
	src := "class A {\nint x;\nint y;\n}"
	buf := text.NewBuffer(src)
	at := strings.Index(src, "int y")
	if err := NewReindenter().Reformat(buf, at, at+len("int y;"), repair.DefaultStyle()); err != nil {
		t.Fatal(err)
	}
	want := "class A {\nint x;\n    int y;\n}"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestReformatUnchangedKeepsVersion(t *testing.T) {
	buf := text.NewBuffer("class A {\n    int x;\n}")
	v := buf.Version()
	if err := NewReindenter().Reformat(buf, 0, buf.Len(), repair.DefaultStyle()); err != nil {
		t.Fatal(err)
	}
	if buf.Version() != v {
		t.Errorf("formatted text was edited: version %d, want %d", buf.Version(), v)
	}
}

func TestReformatSkipsReadOnly(t *testing.T) {
	src := "class A {\nint x;\nint y;\n}"
	buf := text.NewBuffer(src)
	at := strings.Index(src, "int x")
	guard := buf.Protect(at-1, at+1)
	defer guard.Dispose()
	if err := NewReindenter().Reformat(buf, 0, buf.Len(), repair.DefaultStyle()); err != nil {
		t.Fatal(err)
	}
	want := "class A {\nint x;\n    int y;\n}"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"inside method body", "class A {\n    void m() {|\n    }\n}", "        "},
		{"before closing brace", "class A {\n    void m() {|}\n}", "    "},
		{"unfinished initialiser", "class A {\n    int x =|\n}", "        "},
		{"after statement", "class A {\n    void m() {\n        foo();|\n    }\n}", "        "},
		{"after case label", "switch (x) {\ncase 1:|\n}", "        "},
		{"after if header", "class A {\n    void m() {\n        if (x)|\n    }\n}", "            "},
		{"top level", "|", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := strings.Index(tt.src, "|")
			buf := text.NewBuffer(strings.Replace(tt.src, "|", "", 1))
			got := NewReindenter().Indent(buf, at, repair.DefaultStyle())
			if got != tt.want {
				t.Errorf("Indent = %q, want %q", got, tt.want)
			}
		})
	}
}
