package sanitize

import "testing"

func TestStripHTMLRemovesEncodedTags(t *testing.T) {
	got := StripHTML("hello &lt;script&gt;alert(1)&lt;/script&gt; world")
	if got != "hello alert(1) world" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestLineCollapsesWhitespace(t *testing.T) {
	got := Line("  Acme\tLtd \n  Branch ")
	if got != "Acme Ltd Branch" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestTextKeepsNewlines(t *testing.T) {
	got := Text("line one\nline <b>two</b>")
	if got != "line one\nline two" {
		t.Fatalf("unexpected result %q", got)
	}
}
