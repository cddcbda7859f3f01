package attribution

import "testing"

func TestArgumentResolverSingleArgIsUser(t *testing.T) {
	src := ArgumentResolver{}.Resolve([]any{"only-one-arg"})
	if src.Name != "user" {
		t.Fatalf("want user, got %+v", src)
	}
}

func TestArgumentResolverBracketedTag(t *testing.T) {
	src := ArgumentResolver{}.Resolve([]any{"prefix token [svcName:extra] tail", "x"})
	if src.Name != "svcName" {
		t.Fatalf("want svcName, got %+v", src)
	}
}

func TestArgumentResolverNonStringFirstArg(t *testing.T) {
	src := ArgumentResolver{}.Resolve([]any{42, "x"})
	if !src.IsZero() {
		t.Fatalf("want zero source, got %+v", src)
	}
}

func TestArgumentResolverNoArgs(t *testing.T) {
	if src := (ArgumentResolver{}).Resolve(nil); !src.IsZero() {
		t.Fatalf("want zero source, got %+v", src)
	}
}

func TestArgumentResolverMalformedTag(t *testing.T) {
	cases := [][]any{
		{"too short", "x"},             // fewer than three tokens
		{"a b notbracketed c", "x"},    // third token has no tag
		{"a b [noColon] c", "x"},       // tag without colon
		{"a b (svcName:extra) c", "x"}, // wrong bracket style
		{"a b [:empty] c", "x"},        // empty name
	}
	for _, args := range cases {
		if src := (ArgumentResolver{}).Resolve(args); !src.IsZero() {
			t.Fatalf("args %v: want zero source, got %+v", args, src)
		}
	}
}

func TestUnknownSentinelShape(t *testing.T) {
	u := Unknown()
	if u.Name != "unknown" || u.File != "unknown" || u.Line != 0 {
		t.Fatalf("unexpected sentinel: %+v", u)
	}
	if u.IsZero() {
		t.Fatalf("sentinel must be distinguishable from absent source")
	}
}
