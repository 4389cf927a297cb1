package refdata

import "testing"

func TestRegionsLoaded(t *testing.T) {
	entries, err := Regions()
	if err != nil {
		t.Fatalf("load regions: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected at least one region")
	}
	for _, entry := range entries {
		if entry.Code == "" || entry.Name == "" {
			t.Fatalf("incomplete region entry %+v", entry)
		}
	}
}

func TestServiceTypesLoaded(t *testing.T) {
	entries, err := ServiceTypes()
	if err != nil {
		t.Fatalf("load service types: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected at least one service type")
	}
}

func TestIsServiceType(t *testing.T) {
	if !IsServiceType("wedding_hall") {
		t.Fatal("expected wedding_hall to be known")
	}
	if IsServiceType("time_machine_rental") {
		t.Fatal("unexpected service type accepted")
	}
}
