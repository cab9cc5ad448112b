package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// libraryXML is a pared-down Library.xml export: two tracks, the Master
// library list, a smart playlist, and one real user playlist.
const libraryXML = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Tracks</key>
	<dict>
		<key>1001</key>
		<dict>
			<key>Track ID</key><integer>1001</integer>
			<key>Name</key><string>Come Together</string>
			<key>Artist</key><string>The Beatles</string>
			<key>Album</key><string>Abbey Road</string>
			<key>Total Time</key><integer>259000</integer>
			<key>Location</key><string>file://localhost/C:/Users/Tom/Music/iTunes/iTunes%20Media/Music/Beatles/Abbey%20Road/01%20Come%20Together.mp3</string>
		</dict>
		<key>1002</key>
		<dict>
			<key>Track ID</key><integer>1002</integer>
			<key>Name</key><string>Untracked</string>
		</dict>
	</dict>
	<key>Playlists</key>
	<array>
		<dict>
			<key>Name</key><string>Library</string>
			<key>Master</key><true/>
			<key>Playlist Items</key>
			<array>
				<dict><key>Track ID</key><integer>1001</integer></dict>
			</array>
		</dict>
		<dict>
			<key>Name</key><string>Recently Added</string>
			<key>Distinguished Kind</key><integer>10</integer>
			<key>Playlist Items</key>
			<array>
				<dict><key>Track ID</key><integer>1001</integer></dict>
			</array>
		</dict>
		<dict>
			<key>Name</key><string>Road Trip</string>
			<key>Playlist Items</key>
			<array>
				<dict><key>Track ID</key><integer>1001</integer></dict>
				<dict><key>Track ID</key><integer>1002</integer></dict>
				<dict><key>Track ID</key><integer>9999</integer></dict>
			</array>
		</dict>
		<dict>
			<key>Name</key><string>No Items</string>
		</dict>
	</array>
</dict>
</plist>
`

func TestParse(t *testing.T) {
	lib, err := Parse(strings.NewReader(libraryXML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// Track 1002 has no Location and is dropped.
	if len(lib.Tracks) != 1 {
		t.Fatalf("Tracks = %v, want exactly one entry", lib.Tracks)
	}
	track, ok := lib.Tracks["1001"]
	if !ok {
		t.Fatal("track 1001 missing")
	}
	if want := "C:/Users/Tom/Music/iTunes/iTunes Media/Music/Beatles/Abbey Road/01 Come Together.mp3"; track.Location != want {
		t.Errorf("Location = %q, want %q", track.Location, want)
	}
	if track.Artist != "The Beatles" || track.Name != "Come Together" || track.Album != "Abbey Road" {
		t.Errorf("track metadata = %+v", track)
	}
	if track.TotalTime != 259000 {
		t.Errorf("TotalTime = %d, want 259000", track.TotalTime)
	}

	// Master, Distinguished Kind, and item-less playlists are all skipped;
	// unresolvable track IDs are dropped from what remains.
	if len(lib.Playlists) != 1 {
		t.Fatalf("Playlists = %+v, want exactly one", lib.Playlists)
	}
	pl := lib.Playlists[0]
	if pl.Name != "Road Trip" {
		t.Errorf("playlist name = %q, want %q", pl.Name, "Road Trip")
	}
	if len(pl.Tracks) != 1 || pl.Tracks[0].Name != "Come Together" {
		t.Errorf("playlist tracks = %+v", pl.Tracks)
	}
}

func TestParse_BadInput(t *testing.T) {
	if _, err := Parse(strings.NewReader("not a plist")); err == nil {
		t.Error("Parse accepted junk input")
	}
}

func TestDecodeFileURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{
			"localhost authority",
			"file://localhost/C:/Music/a.mp3",
			"C:/Music/a.mp3",
		},
		{
			"no authority",
			"file:///home/tom/music/a.mp3",
			"/home/tom/music/a.mp3",
		},
		{
			"percent escapes",
			"file://localhost/C:/iTunes%20Media/Caf%C3%A9.mp3",
			"C:/iTunes Media/Café.mp3",
		},
		{"plain path passes through", "/music/a.mp3", "/music/a.mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeFileURL(tt.raw); got != tt.want {
				t.Errorf("DecodeFileURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean name", "Road Trip", "Road Trip"},
		{"reserved characters", `Best <of> "2024": A/B\C?`, "Best _of_ _2024__ A_B_C_"},
		{"trailing periods", "Mix vol. 2...", "Mix vol. 2"},
		{"surrounding spaces", "  chill  ", "chill"},
		{"all invalid", `///`, "___"},
		{"empty", "", "Untitled"},
		{"only periods and spaces", " .. ", "Untitled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWritePlaylist(t *testing.T) {
	dir := t.TempDir()
	pl := Playlist{
		Name: "Road/Trip",
		Tracks: []Track{
			{Location: "C:/Music/Beatles/01.mp3", Name: "Come Together", Artist: "The Beatles", TotalTime: 259000},
			{Location: "C:/Music/Unknown/02.mp3"},
		},
	}

	path, count, err := WritePlaylist(pl, dir)
	if err != nil {
		t.Fatalf("WritePlaylist: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if want := filepath.Join(dir, "Road_Trip.m3u"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "#EXTM3U\n" +
		"#EXTINF:259,The Beatles - Come Together\n" +
		"C:/Music/Beatles/01.mp3\n" +
		"#EXTINF:-1,Unknown Artist - Unknown Track\n" +
		"C:/Music/Unknown/02.mp3\n"
	if string(got) != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestParse_EmptyDict(t *testing.T) {
	const minimal = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0"><dict/></plist>
`
	lib, err := Parse(strings.NewReader(minimal))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(lib.Tracks) != 0 || len(lib.Playlists) != 0 {
		t.Errorf("empty library parsed as %+v", lib)
	}
}
