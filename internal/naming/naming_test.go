package naming

import (
	"strings"
	"testing"
)

func TestEncodeKnownVocabulary(t *testing.T) {
	n := NewNamer(1)

	res, err := n.Encode("us_plinko_timer_topchik_1", StyleLower)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// us=e5, plinko=mn, timer=08, topchik=4, 1=1
	if res.External != "e5mn0841" {
		t.Errorf("external = %q, want e5mn0841", res.External)
	}
	if len(res.Internal) != 30 {
		t.Errorf("internal key length = %d, want 30", len(res.Internal))
	}
	if res.Original != "us_plinko_timer_topchik_1" {
		t.Errorf("original = %q", res.Original)
	}
}

func TestEncodeInvalidFormat(t *testing.T) {
	n := NewNamer(1)
	if _, err := n.Encode("too_short", StyleLower); err == nil {
		t.Fatal("want error for name with fewer than 3 parts")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	n := NewNamer(1)

	res, err := n.Encode("br_chicken_prank_fire_2", StyleLower)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec, err := n.Decode(res.External)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dec.Type != "external_saved" {
		t.Errorf("type = %q, want external_saved", dec.Type)
	}
	if dec.DecodedName != "br_chicken_prank_fire_2" {
		t.Errorf("decoded = %q", dec.DecodedName)
	}
}

func TestDecodeStripsFileExtension(t *testing.T) {
	n := NewNamer(1)

	res, err := n.Encode("us_slots_fake_bomb_3", StyleLower)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec, err := n.Decode(res.External + ".mp4")
	if err != nil {
		t.Fatalf("Decode with extension: %v", err)
	}
	if dec.DecodedName != "us_slots_fake_bomb_3" {
		t.Errorf("decoded = %q", dec.DecodedName)
	}
}

func TestDecodeBySegmentation(t *testing.T) {
	// fresh namer with no saved mapping for this code
	n := NewNamer(1)

	dec, err := n.Decode("e5mn08")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dec.Type != "external" {
		t.Errorf("type = %q, want external", dec.Type)
	}
	if dec.DecodedName != "us_plinko_timer" {
		t.Errorf("decoded = %q, want us_plinko_timer", dec.DecodedName)
	}
	if dec.PartsFound != 3 {
		t.Errorf("parts found = %d, want 3", dec.PartsFound)
	}
}

func TestDecodeInternalKeyShape(t *testing.T) {
	n := NewNamer(1)
	res, _ := n.Encode("us_poker_review_mega_4", StyleLower)

	dec, err := n.Decode(res.Internal)
	if err != nil {
		t.Fatalf("Decode internal: %v", err)
	}
	if dec.Type != "internal" {
		t.Errorf("type = %q, want internal", dec.Type)
	}
}

func TestDecodeUnknownCode(t *testing.T) {
	n := NewNamer(1)
	if _, err := n.Decode("this-code-is-way-too-long-to-be-external"); err == nil {
		t.Fatal("want error for unknown long code")
	}
}

func TestEncodeUnknownWordsGetCodes(t *testing.T) {
	n := NewNamer(1)

	res, err := n.Encode("xx_newgame_dance_wow_5", StyleLower)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if res.External == "" {
		t.Fatal("external code empty")
	}

	// the generated vocabulary round-trips through the saved mapping
	dec, err := n.Decode(res.External)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dec.DecodedName != "xx_newgame_dance_wow_5" {
		t.Errorf("decoded = %q", dec.DecodedName)
	}

	// and the dictionary now carries the new words
	dict := n.Dictionary()
	if _, ok := dict["newgame"]; !ok {
		t.Error("dictionary missing generated entry for newgame")
	}
}

func TestMaskingStyles(t *testing.T) {
	n := NewNamer(1)

	lower, _ := n.Encode("us_plinko_timer_topchik_1", StyleLower)
	if lower.External != strings.ToLower(lower.External) {
		t.Errorf("lower style produced %q", lower.External)
	}

	blogger, _ := n.Encode("br_plinko_timer_topchik_1", StyleBlogger)
	for i, r := range blogger.External {
		isUpper := r >= 'A' && r <= 'Z'
		isLetter := (r >= 'a' && r <= 'z') || isUpper
		if !isLetter {
			continue
		}
		if i%3 == 0 && !isUpper {
			t.Errorf("blogger style: char %d of %q not uppercased", i, blogger.External)
		}
	}
}
