package layout

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDebugJSON(t *testing.T) {
	res, _ := buildSample(t, BuildOptions{Flags: DefaultFlags()})
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteDebugJSON(res, path); err != nil {
		t.Fatalf("WriteDebugJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var back Result
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back.Pages) != len(res.Pages) || back.Pages[0].Images[0].Margin != res.Pages[0].Images[0].Margin {
		t.Fatalf("debug JSON lost data: %+v", back.Pages)
	}
	if err := WriteDebugJSON(nil, path); err != nil {
		t.Fatalf("nil result should be ignored: %v", err)
	}
}
