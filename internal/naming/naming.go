package naming

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"unicode"
)

// Masking styles for external codes.
const (
	StyleLower   = 1 // all lowercase
	StyleBlogger = 2 // every third character uppercased
	StyleRandom  = 3 // random case
)

const internalKeyLen = 30

// file extensions stripped before decoding
var ignoreExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".jpg", ".png", ".gif"}

// defaultCipher maps the known vocabulary of creative-name parts
// (geo_slot_approach_comment_number) to their short codes.
var defaultCipher = map[string]string{
	// geo
	"bd": "q4", "gr": "ns", "us": "e5", "br": "x7", "in": "w9", "uk": "m2",
	"de": "k8", "fr": "j6", "it": "h3", "es": "g1", "ca": "f4", "au": "d2",
	"jp": "c7", "kr": "b9", "th": "a1", "vn": "z5", "ph": "y8", "id": "x3",
	"my": "w6", "sg": "v9", "tw": "u2", "hk": "t5", "mx": "s8", "co": "r1",

	// slot / game type
	"plinko": "mn", "chicken": "lp", "slots": "7V", "poker": "kj", "crash": "hg",
	"blackjack": "fd", "roulette": "sa", "baccarat": "qw", "mines": "er", "wheel": "ty",
	"aviator": "ui", "keno": "op", "limbo": "as", "dice": "df", "hilo": "gh",
	"towers": "jk", "stairs": "zx", "balloon": "cv", "goal": "bn", "scratch": "nm",

	// approach
	"timer": "08", "couple": "lu", "prank": "d9", "fake": "c8", "review": "b7",
	"tutorial": "a6", "reaction": "95", "unboxing": "84", "challenge": "73",
	"lifestyle": "62", "travel": "51", "cooking": "40", "gym": "39", "car": "28",
	"adapt": "4c", "native": "3b", "banner": "2a", "video": "19",

	// comment
	"nekittopchik": "3", "topchik": "4", "bomb": "5", "fire": "6", "mega": "7",
	"super": "8", "ultra": "9", "best": "1", "new": "2", "hot": "0",
	"cool": "a", "nice": "b", "good": "c", "great": "d", "awesome": "e",
	"perfect": "f", "amazing": "g", "fantastic": "h", "incredible": "i", "wonderful": "j",

	// number
	"1": "1", "2": "2", "3": "3", "4": "4", "5": "5",
	"6": "6", "7": "7", "8": "8", "9": "9", "0": "0",
}

// EncodeResult is the outcome of masking one creative name.
type EncodeResult struct {
	External string `json:"external"`
	Internal string `json:"internal"`
	Original string `json:"original"`
	Style    int    `json:"style"`
}

// DecodeResult is the outcome of unmasking one code.
type DecodeResult struct {
	DecodedName string `json:"decoded_name"`
	Type        string `json:"type"`
	Code        string `json:"code"`
	PartsFound  int    `json:"parts_found,omitempty"`
}

// Namer masks creative names (geo_slot_approach_comment_number) into short
// external codes for partners and decodes them back. Unknown vocabulary gets
// a generated code on the fly, so any well-formed name encodes.
type Namer struct {
	mu         sync.Mutex
	cipher     map[string]string
	reverse    map[string]string
	codeToName map[string]string
	rnd        *rand.Rand
}

func NewNamer(seed int64) *Namer {
	n := &Namer{
		cipher:     make(map[string]string, len(defaultCipher)),
		reverse:    make(map[string]string, len(defaultCipher)),
		codeToName: make(map[string]string),
		rnd:        rand.New(rand.NewSource(seed)),
	}
	for k, v := range defaultCipher {
		n.cipher[k] = v
		n.reverse[strings.ToLower(v)] = k
	}
	return n
}

// Encode masks a creative name. The name must have at least three
// underscore-separated parts.
func (n *Namer) Encode(name string, style int) (EncodeResult, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(name)), "_")
	if len(parts) < 3 {
		return EncodeResult{}, fmt.Errorf("invalid creative name %q: want geo_slot_approach_comment_number", name)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	var coded strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if c, ok := n.cipher[part]; ok {
			coded.WriteString(c)
			continue
		}
		if i >= 4 {
			// numbers pass through by first digit
			coded.WriteString(part[:1])
			continue
		}
		length := 2
		if i == 3 {
			length = 1
		}
		code := n.generateCode(part, length)
		n.cipher[part] = code
		n.reverse[code] = part
		coded.WriteString(code)
	}

	external := applyStyle(coded.String(), style, n.rnd)
	n.codeToName[strings.ToLower(external)] = strings.ToLower(strings.TrimSpace(name))

	return EncodeResult{
		External: external,
		Internal: internalKey(name),
		Original: name,
		Style:    style,
	}, nil
}

// Decode unmasks a code. File extensions are stripped first so both bare
// codes and uploaded filenames decode the same way.
func (n *Namer) Decode(code string) (DecodeResult, error) {
	clean := stripExtension(strings.TrimSpace(code))

	if isInternalKey(clean) {
		return DecodeResult{
			DecodedName: "[INTERNAL_CODE_MATCHED]",
			Type:        "internal",
			Code:        clean,
		}, nil
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if name, ok := n.codeToName[strings.ToLower(clean)]; ok {
		return DecodeResult{
			DecodedName: name,
			Type:        "external_saved",
			Code:        clean,
		}, nil
	}

	if len(clean) > 15 || clean == "" {
		return DecodeResult{}, fmt.Errorf("unknown code format: %s", clean)
	}

	// Greedy segmentation against the reverse dictionary, longest match
	// first.
	normalized := strings.ToLower(clean)
	var parts []string
	found := 0
	for i := 0; i < len(normalized) && len(parts) < 5; {
		matched := false
		for _, length := range []int{3, 2, 1} {
			if i+length > len(normalized) {
				continue
			}
			if word, ok := n.reverse[normalized[i:i+length]]; ok {
				parts = append(parts, word)
				found++
				i += length
				matched = true
				break
			}
		}
		if !matched {
			end := i + 2
			if end > len(normalized) {
				end = len(normalized)
			}
			parts = append(parts, "[UNKNOWN:"+normalized[i:end]+"]")
			i = end
		}
	}

	if len(parts) == 0 {
		return DecodeResult{}, fmt.Errorf("unknown code format: %s", clean)
	}
	return DecodeResult{
		DecodedName: strings.Join(parts, "_"),
		Type:        "external",
		Code:        clean,
		PartsFound:  found,
	}, nil
}

// Dictionary returns a copy of the current cipher dictionary.
func (n *Namer) Dictionary() map[string]string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make(map[string]string, len(n.cipher))
	for k, v := range n.cipher {
		out[k] = v
	}
	return out
}

// AddMapping registers a custom word-to-code pair.
func (n *Namer) AddMapping(word, code string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	word = strings.ToLower(word)
	code = strings.ToLower(code)
	n.cipher[word] = code
	n.reverse[code] = word
}

// generateCode derives a stable short code for a word not in the dictionary:
// its prefix plus one hash character, bumped with a counter on collision.
// Caller holds the lock.
func (n *Namer) generateCode(word string, length int) string {
	prefix := word
	if len(prefix) > length-1 {
		prefix = prefix[:length-1]
	}
	sum := md5.Sum([]byte(word))
	candidate := prefix + hex.EncodeToString(sum[:])[:1]

	for counter := 1; ; counter++ {
		if _, taken := n.reverse[candidate]; !taken {
			if _, taken := n.codeToName[candidate]; !taken {
				break
			}
		}
		candidate = prefix + fmt.Sprintf("%d", counter%10)
		if counter > 50 {
			candidate = fmt.Sprintf("%s%02d", hex.EncodeToString(sum[:])[:1], n.rnd.Intn(90)+10)
			break
		}
	}
	if len(candidate) > length {
		candidate = candidate[:length]
	}
	return candidate
}

func applyStyle(code string, style int, rnd *rand.Rand) string {
	switch style {
	case StyleLower:
		return strings.ToLower(code)
	case StyleBlogger:
		var b strings.Builder
		for i, r := range strings.ToLower(code) {
			if i%3 == 0 {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(r)
			}
		}
		return b.String()
	case StyleRandom:
		var b strings.Builder
		for _, r := range code {
			if rnd.Intn(2) == 0 {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
		}
		return b.String()
	default:
		return code
	}
}

// internalKey is a long mixed-case key derived from the original name,
// kept internal and never handed to partners.
func internalKey(name string) string {
	sum := sha256.Sum256([]byte(name))
	hexSum := hex.EncodeToString(sum[:])
	var b strings.Builder
	for i := 0; i < internalKeyLen; i++ {
		r := rune(hexSum[i])
		if i%2 == 0 {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isInternalKey(code string) bool {
	if len(code) != internalKeyLen {
		return false
	}
	hasUpper, hasLower := false, false
	for _, r := range code {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	return hasUpper && hasLower
}

func stripExtension(code string) string {
	lower := strings.ToLower(code)
	for _, ext := range ignoreExtensions {
		if strings.HasSuffix(lower, ext) {
			return code[:len(code)-len(ext)]
		}
	}
	return code
}
