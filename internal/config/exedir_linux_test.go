//go:build linux

package config

import "testing"

func TestProcExePathDropsDeletedMarker(t *testing.T) {
	cases := map[string]string{
		"/opt/elechka/bin/elechka":           "/opt/elechka/bin/elechka",
		"/opt/elechka/bin/elechka (deleted)": "/opt/elechka/bin/elechka",
		"/opt/(deleted)/elechka":             "/opt/(deleted)/elechka",
	}
	for link, want := range cases {
		if got := procExePath(link); got != want {
			t.Fatalf("procExePath(%q) = %q, want %q", link, got, want)
		}
	}
}

func TestExecutableDirectoryOfReplacedBinary(t *testing.T) {
	stubExecutablePath(t, procExePath("/srv/bot/elechka (deleted)"), nil)

	if got := ExecutableDirectoryPath(".env"); got != "/srv/bot/.env" {
		t.Fatalf("unexpected path %q", got)
	}
}
