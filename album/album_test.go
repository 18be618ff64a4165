package album

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lucasb-eyer/go-colorful"
)

const pagesCSV = `PageNo,BackColor_Red,BackColor_Green,BackColor_Blue
-1,0,0,0
1,255,0,51
2,0,0,0
`

const imagesCSV = `BookImageId,PageNo,ImagePath,LeftPos,TopPos,Width,Height,LastLeft,LastTop,LastWidth,LastHeight,ImageRotationAngle
7,1,"C:\Pics\a.jpg",10,20,100,50,5,6,120,60,350
8,2,"C:\Pics\b.jpg",0,0,10,10,0,0,10,10,
`

const textsCSV = `BookTextId,PageNo,LeftPos,TopPos,Width,Height,BText
3,1,0,0,100,50,"<FlowDocument FontSize=""20""><Paragraph><Run>Hello</Run></Paragraph>
</FlowDocument>"
`

func writeTables(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		TablePages:  pagesCSV,
		TableImages: imagesCSV,
		TableTexts:  textsCSV,
	} {
		if err := os.WriteFile(filepath.Join(dir, name+".csv"), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadFromDirSource(t *testing.T) {
	a, err := Load(context.Background(), DirSource{Dir: writeTables(t)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantPages := []Page{
		{PageNo: -1, BackColor: colorful.Color{}},
		{PageNo: 1, BackColor: colorful.Color{R: 1, G: 0, B: 0.2}},
		{PageNo: 2, BackColor: colorful.Color{}},
	}
	if diff := cmp.Diff(wantPages, a.Pages); diff != "" {
		t.Fatalf("pages mismatch (-want +got):\n%s", diff)
	}

	wantImages := []Image{
		{BookImageID: "7", PageNo: 1, ImagePath: `C:\Pics\a.jpg`, LeftPos: 10, TopPos: 20, Width: 100, Height: 50,
			LastLeft: 5, LastTop: 6, LastWidth: 120, LastHeight: 60, ImageRotationAngle: 350},
		{BookImageID: "8", PageNo: 2, ImagePath: `C:\Pics\b.jpg`, Width: 10, Height: 10, LastWidth: 10, LastHeight: 10},
	}
	if diff := cmp.Diff(wantImages, a.Images); diff != "" {
		t.Fatalf("images mismatch (-want +got):\n%s", diff)
	}

	if len(a.Texts) != 1 {
		t.Fatalf("expected 1 text, got %d", len(a.Texts))
	}
	if !strings.Contains(a.Texts[0].BText, `FontSize="20"`) || !strings.Contains(a.Texts[0].BText, "\n") {
		t.Fatalf("BText not unquoted correctly: %q", a.Texts[0].BText)
	}

	if got := a.ImagesOn(2); len(got) != 1 || got[0].BookImageID != "8" {
		t.Fatalf("ImagesOn(2) = %+v", got)
	}
	if got := a.TextsOn(2); len(got) != 0 {
		t.Fatalf("TextsOn(2) = %+v", got)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	dir := writeTables(t)
	if err := os.WriteFile(filepath.Join(dir, TablePages+".csv"), []byte("PageNo\n1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(context.Background(), DirSource{Dir: dir})
	if err == nil || !strings.Contains(err.Error(), "BackColor_Red") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestLoadRejectsFractionalPageNo(t *testing.T) {
	dir := writeTables(t)
	if err := os.WriteFile(filepath.Join(dir, TablePages+".csv"),
		[]byte("PageNo,BackColor_Red,BackColor_Green,BackColor_Blue\n1.5,0,0,0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(context.Background(), DirSource{Dir: dir}); err == nil {
		t.Fatalf("expected error for fractional page number")
	}
}

func TestMDBSourceCommandFailure(t *testing.T) {
	src := MDBSource{Path: "album.mdb", Command: filepath.Join(t.TempDir(), "no-such-exporter")}
	if _, err := src.Table(context.Background(), TablePages); err == nil {
		t.Fatalf("expected error for missing exporter")
	}
}

func TestRewriterResolve(t *testing.T) {
	rw := NewRewriter(
		Rule{From: `C:\Users\F\Pictures\Roadtrip\Best of`, To: "/srv/images/"},
		Rule{From: `C:\Users\F\Pictures`, To: "/srv/other"},
	)
	cases := map[string]string{
		`C:\Users\F\Pictures\Roadtrip\Best of\\day1\img.jpg`: filepath.FromSlash("/srv/images/day1/img.jpg"),
		`C:\Users\F\Pictures\misc.png`:                       filepath.FromSlash("/srv/other/misc.png"),
	}
	for in, want := range cases {
		got, err := rw.Resolve(in)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("Resolve(%q) = %q want %q", in, got, want)
		}
	}

	if _, err := rw.Resolve(`D:\elsewhere\x.jpg`); !errors.Is(err, ErrNoRewriteRule) {
		t.Fatalf("expected ErrNoRewriteRule, got %v", err)
	}
	if _, err := rw.Resolve("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestRewriterWithoutRules(t *testing.T) {
	var rw *Rewriter
	got, err := rw.Resolve(`images\a.jpg`)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := filepath.FromSlash("images/a.jpg"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
