package document

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/require"

	"user-directory/internal/domain"
)

var testPerson = domain.Person{
	ID:     1,
	Name:   "Jane Doe",
	Email:  "jane@x.com",
	Age:    30,
	City:   "Springfield",
	Gender: "F",
	Skills: "Go,SQL",
}

// writePages writes a minimal n-page document to path.
func writePages(t *testing.T, path string, n int) {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "Letter", "")
	for i := 0; i < n; i++ {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "", 12)
		pdf.Text(72, 72, "resume page")
	}
	require.NoError(t, pdf.OutputFileAndClose(path))
}

// writePNG writes a small solid-color PNG to path.
func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestGenerate_NoOptionalAssets(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "profile.pdf")

	// No logo, no placeholder, no stored image, no resume: generation must
	// still succeed with warning text standing in for both assets.
	gen := Generator{}
	require.NoError(t, gen.Generate(testPerson, true, out))

	pages, err := PageCount(out)
	require.NoError(t, err)
	require.Equal(t, 1, pages)
}

func TestGenerate_WithStoredImageAndLogo(t *testing.T) {
	dir := t.TempDir()
	photo := filepath.Join(dir, "photo.png")
	logo := filepath.Join(dir, "logo.png")
	out := filepath.Join(dir, "profile.pdf")
	writePNG(t, photo)
	writePNG(t, logo)

	person := testPerson
	person.ImagePath = photo

	gen := Generator{LogoPath: logo}
	require.NoError(t, gen.Generate(person, false, out))

	pages, err := PageCount(out)
	require.NoError(t, err)
	require.Equal(t, 1, pages)
}

func TestGenerate_WithImageAndResumePages(t *testing.T) {
	dir := t.TempDir()
	photo := filepath.Join(dir, "photo.png")
	profile := filepath.Join(dir, "profile.pdf")
	resume := filepath.Join(dir, "resume.pdf")
	out := filepath.Join(dir, "user_1_full.pdf")
	writePNG(t, photo)

	person := testPerson
	person.ImagePath = photo

	require.NoError(t, Generator{}.Generate(person, false, profile))
	writePages(t, resume, 3)
	require.NoError(t, Merge(profile, resume, out))

	pages, err := PageCount(out)
	require.NoError(t, err)
	require.Equal(t, 4, pages, "profile page with embedded photo plus three resume pages")
}

func TestMerge_ProfileOnly(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "profile.pdf")
	out := filepath.Join(dir, "user_1_full.pdf")

	require.NoError(t, Generator{}.Generate(testPerson, true, profile))
	require.NoError(t, Merge(profile, "", out))

	pages, err := PageCount(out)
	require.NoError(t, err)
	require.Equal(t, 1, pages)
}

func TestMerge_WithResume(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "profile.pdf")
	resume := filepath.Join(dir, "resume.pdf")
	out := filepath.Join(dir, "user_1_full.pdf")

	require.NoError(t, Generator{}.Generate(testPerson, false, profile))
	writePages(t, resume, 3)
	require.NoError(t, Merge(profile, resume, out))

	pages, err := PageCount(out)
	require.NoError(t, err)
	require.Equal(t, 4, pages, "profile page plus three resume pages")
}

func TestMerge_OverwritesPriorArtifact(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "profile.pdf")
	out := filepath.Join(dir, "user_1_full.pdf")

	require.NoError(t, Generator{}.Generate(testPerson, true, profile))
	require.NoError(t, Merge(profile, "", out))
	require.NoError(t, Merge(profile, "", out))

	pages, err := PageCount(out)
	require.NoError(t, err)
	require.Equal(t, 1, pages)
}

func TestMerge_CorruptResumeFailsWhole(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "profile.pdf")
	resume := filepath.Join(dir, "resume.pdf")
	out := filepath.Join(dir, "user_1_full.pdf")

	require.NoError(t, Generator{}.Generate(testPerson, false, profile))
	require.NoError(t, os.WriteFile(resume, []byte("this is not a pdf"), 0o644))

	require.Error(t, Merge(profile, resume, out))

	_, err := os.Stat(out)
	require.True(t, os.IsNotExist(err), "failed merge must not leave a partial artifact")
}

func TestResolveAsset(t *testing.T) {
	dir := t.TempDir()
	stored := filepath.Join(dir, "photo.png")
	placeholder := filepath.Join(dir, "placeholder.jpg")
	require.NoError(t, os.WriteFile(stored, []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(placeholder, []byte("jpg"), 0o644))

	path, state := ResolveAsset(stored, placeholder)
	require.Equal(t, AssetPresent, state)
	require.Equal(t, stored, path)

	path, state = ResolveAsset(filepath.Join(dir, "missing.png"), placeholder)
	require.Equal(t, AssetPlaceholder, state)
	require.Equal(t, placeholder, path)

	_, state = ResolveAsset(filepath.Join(dir, "missing.png"), filepath.Join(dir, "also-missing.jpg"))
	require.Equal(t, AssetAbsent, state)

	_, state = ResolveAsset("", "")
	require.Equal(t, AssetAbsent, state)
}

func TestResolveAsset_NormalizesSeparators(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "uploads"), 0o755))
	stored := filepath.Join(dir, "uploads", "photo.png")
	require.NoError(t, os.WriteFile(stored, []byte("png"), 0o644))

	windowsStyle := dir + `\uploads\photo.png`
	path, state := ResolveAsset(windowsStyle, "")
	require.Equal(t, AssetPresent, state)
	require.Equal(t, dir+"/uploads/photo.png", path)
}
