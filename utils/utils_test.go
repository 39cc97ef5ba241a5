package utils

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Wall Art", "wall-art"},
		{"accents folded", "Décor Élégant", "decor-elegant"},
		{"punctuation collapsed", "Hand-made!! Pots & Pans", "hand-made-pots-pans"},
		{"leading and trailing junk", "  --Lamps--  ", "lamps"},
		{"digits kept", "Series 2 Vases", "series-2-vases"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateSlug(tt.in); got != tt.want {
				t.Errorf("GenerateSlug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitCommaList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"trims whitespace", " a , b ,c ", []string{"a", "b", "c"}},
		{"drops empties", "a,,b,", []string{"a", "b"}},
		{"empty input", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitCommaList(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitCommaList(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 10); got != 10 {
		t.Errorf("empty should fall back, got %d", got)
	}
	if got := ParseIntDefault("7", 10); got != 7 {
		t.Errorf("valid value ignored, got %d", got)
	}
	if got := ParseIntDefault("abc", 10); got != 10 {
		t.Errorf("garbage should fall back, got %d", got)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckPassword(hash, "s3cret"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestRefreshCookieClearMatchesSet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setRec := httptest.NewRecorder()
	setCtx, _ := gin.CreateTestContext(setRec)
	SetRefreshCookie(setCtx, "some-token")

	clearRec := httptest.NewRecorder()
	clearCtx, _ := gin.CreateTestContext(clearRec)
	ClearRefreshCookie(clearCtx)

	setCookies := setRec.Result().Cookies()
	clearCookies := clearRec.Result().Cookies()
	if len(setCookies) != 1 || len(clearCookies) != 1 {
		t.Fatalf("expected one cookie each, got %d and %d", len(setCookies), len(clearCookies))
	}

	set, cleared := setCookies[0], clearCookies[0]
	if set.Name != cleared.Name {
		t.Errorf("cookie names differ: %q vs %q", set.Name, cleared.Name)
	}
	// a clear at a different path leaves the original cookie in the browser
	if set.Path != cleared.Path {
		t.Errorf("cookie paths differ: %q vs %q", set.Path, cleared.Path)
	}
	if set.Value != "some-token" || set.MaxAge <= 0 {
		t.Errorf("set cookie malformed: %+v", set)
	}
	if cleared.MaxAge >= 0 {
		t.Errorf("clear cookie must expire immediately, MaxAge = %d", cleared.MaxAge)
	}
}

func TestIsNoDocuments(t *testing.T) {
	if !IsNoDocuments(mongo.ErrNoDocuments) {
		t.Error("a FindOne miss should be recognised")
	}
	if !IsNoDocuments(fmt.Errorf("lookup: %w", mongo.ErrNoDocuments)) {
		t.Error("a wrapped miss should be recognised")
	}
	// a transient failure must not be mistaken for an absent record: the
	// cart and user lookup paths create documents on a confirmed miss only
	if IsNoDocuments(errors.New("connection reset by peer")) {
		t.Error("a database failure must not look like a missing document")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	token, err := GenerateAccessToken("user-1", "a@b.com", "ADMIN", AccessTTL())
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ValidateToken(token, "unit-test-secret")
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@b.com" || claims.Role != "ADMIN" {
		t.Errorf("claims round-trip mismatch: %+v", claims)
	}

	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Error("token validated with the wrong secret")
	}
}

// pngBytes is a minimal payload http.DetectContentType sniffs as image/png.
var pngBytes = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 64)...)

func fileHeaderFromBytes(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(8 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestFileValidatorAcceptsPng(t *testing.T) {
	v := NewImageValidator()
	fh := fileHeaderFromBytes(t, "photo.png", pngBytes)

	mime, err := v.ValidateFile(fh)
	if err != nil {
		t.Fatal(err)
	}
	if mime != "image/png" {
		t.Errorf("detected mime = %q, want image/png", mime)
	}
}

func TestFileValidatorRejectsExtension(t *testing.T) {
	v := NewImageValidator()
	fh := fileHeaderFromBytes(t, "payload.exe", pngBytes)

	if _, err := v.ValidateFile(fh); err == nil {
		t.Fatal("disallowed extension accepted")
	}
}

func TestFileValidatorRejectsSpoofedContent(t *testing.T) {
	v := NewImageValidator()
	// .png name over plain-text bytes must fail the sniff check
	fh := fileHeaderFromBytes(t, "fake.png", []byte("#!/bin/sh\necho hi\n"))

	if _, err := v.ValidateFile(fh); err == nil {
		t.Fatal("spoofed content accepted")
	}
}

func TestFileValidatorRejectsOversize(t *testing.T) {
	v := &FileValidator{
		allowedExt:  map[string]bool{".png": true},
		allowedMime: map[string]bool{"image/png": true},
		maxSize:     16,
	}
	fh := fileHeaderFromBytes(t, "big.png", pngBytes)

	if _, err := v.ValidateFile(fh); err == nil {
		t.Fatal("oversize file accepted")
	}
}
