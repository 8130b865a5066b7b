package content_test

import (
	"testing"

	"snowbird_docs/internal/content"
)

func TestExtract_NetworkAndPassword(t *testing.T) {
	body := "## WiFi Access\nNetwork: Foo\nPassword: Bar\n## Next\nNetwork: Other\n"
	info := content.LineScanner{}.Extract(body)
	if info.Network == nil || *info.Network != "Foo" {
		t.Fatalf("network: %v", info.Network)
	}
	if info.Password == nil || *info.Password != "Bar" {
		t.Fatalf("password: %v", info.Password)
	}
}

func TestExtract_NoHeading(t *testing.T) {
	info := content.LineScanner{}.Extract("Network: Foo\nPassword: Bar\n")
	if info.Network != nil || info.Password != nil {
		t.Fatalf("expected empty result, got %+v", info)
	}
}

func TestExtract_PartialMatch(t *testing.T) {
	info := content.LineScanner{}.Extract("## WiFi Access\nNetwork: Foo\n## Next")
	if info.Network == nil || *info.Network != "Foo" {
		t.Fatalf("network: %v", info.Network)
	}
	if info.Password != nil {
		t.Fatalf("expected absent password, got %q", *info.Password)
	}
}

func TestExtract_EmptyBody(t *testing.T) {
	info := content.LineScanner{}.Extract("")
	if info.Network != nil || info.Password != nil {
		t.Fatalf("expected empty result, got %+v", info)
	}
}

func TestExtract_CaseAndSeparators(t *testing.T) {
	body := "intro text\n## wifi access\n**Network** - Chalet-5G\npassword:  hunter2  \n"
	info := content.LineScanner{}.Extract(body)
	if info.Network == nil || *info.Network != "Chalet-5G" {
		t.Fatalf("network: %v", info.Network)
	}
	if info.Password == nil || *info.Password != "hunter2" {
		t.Fatalf("password: %v", info.Password)
	}
}

func TestExtract_HeadingMatchedByPrefix(t *testing.T) {
	info := content.LineScanner{}.Extract("## WiFi Access Info\nNetwork: Foo\n")
	if info.Network == nil || *info.Network != "Foo" {
		t.Fatalf("heading with trailing words should open the section: %+v", info)
	}
}

func TestExtract_DeeperHeadingDoesNotOpen(t *testing.T) {
	info := content.LineScanner{}.Extract("#### WiFi Access\nNetwork: Foo\n")
	if info.Network != nil || info.Password != nil {
		t.Fatalf("expected empty result for level-4 heading, got %+v", info)
	}
}

func TestExtract_StopsAtNextSection(t *testing.T) {
	body := "## WiFi Access\nnothing useful here\n## Heating\nPassword: wrong\n"
	info := content.LineScanner{}.Extract(body)
	if info.Network != nil || info.Password != nil {
		t.Fatalf("expected empty result, got %+v", info)
	}
}
