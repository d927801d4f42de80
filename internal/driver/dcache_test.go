package driver

import (
	"testing"

	"transplator/internal/project"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := project.DigestString("k")

	var got DiskPayload
	if hit, err := cache.Get(key, &got); hit || err != nil {
		t.Fatalf("Get on empty cache = %v, %v", hit, err)
	}

	want := DiskPayload{Name: "A", Text: "WriteValue(x);\n", Encoding: "utf-8"}
	if err := cache.Put(key, &want); err != nil {
		t.Fatal(err)
	}
	hit, err := cache.Get(key, &got)
	if !hit || err != nil {
		t.Fatalf("Get = %v, %v", hit, err)
	}
	if got.Name != want.Name || got.Text != want.Text || got.Encoding != want.Encoding || got.Schema != diskCacheSchemaVersion {
		t.Errorf("payload = %+v", got)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if hit, _ := cache.Get(key, &got); hit {
		t.Error("entry survived DropAll")
	}
}

func TestNilDiskCache(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(project.Digest{}, &DiskPayload{}); err != nil {
		t.Fatal(err)
	}
	if hit, err := cache.Get(project.Digest{}, &DiskPayload{}); hit || err != nil {
		t.Fatalf("Get = %v, %v", hit, err)
	}
}
