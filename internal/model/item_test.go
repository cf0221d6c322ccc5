package model

import "testing"

func TestParseKey(t *testing.T) {
	key, err := ParseKey("  6f1c2a9e-7d0b-4c3e-9a51-2b8d4e6f0a11 ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if key.String() != "6f1c2a9e-7d0b-4c3e-9a51-2b8d4e6f0a11" {
		t.Errorf("Unexpected key %s", key)
	}

	if _, err := ParseKey("not-a-uuid"); err == nil {
		t.Error("Expected error for malformed key")
	}
}

func TestNewKey_Unique(t *testing.T) {
	seen := make(map[Key]bool)
	for i := 0; i < 100; i++ {
		k := NewKey()
		if k.IsNil() {
			t.Fatal("NewKey returned nil key")
		}
		if seen[k] {
			t.Fatalf("Duplicate key %s", k)
		}
		seen[k] = true
	}
}

func TestFeedItem_GetDisplayName(t *testing.T) {
	key := MustParseKey("6f1c2a9e-7d0b-4c3e-9a51-2b8d4e6f0a11")
	tests := []struct {
		name     string
		area     string
		expected string
	}{
		{"The Peak", "HK Island", "The Peak"},
		{"  ", "Shek O", "Shek O"},
		{"", "", key.String()},
	}

	for _, test := range tests {
		item := FeedItem{Key: key, Name: test.name, Area: test.area}
		if result := item.GetDisplayName(); result != test.expected {
			t.Errorf("GetDisplayName() with name='%s', area='%s' = '%s', expected '%s'",
				test.name, test.area, result, test.expected)
		}
	}
}

func TestCategory_ParseAndMatch(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
	}{
		{"food", CategoryFood},
		{" Hiking ", CategoryHiking},
		{"SIGHTS", CategorySights},
		{"", CategoryAll},
		{"museums", CategoryAll},
	}

	for _, test := range tests {
		if result := ParseCategory(test.input); result != test.expected {
			t.Errorf("ParseCategory(%q) = %s, expected %s", test.input, result, test.expected)
		}
	}

	hike := FeedItem{Category: CategoryHiking}
	if !CategoryAll.Matches(hike) || !CategoryHiking.Matches(hike) || CategoryFood.Matches(hike) {
		t.Error("Category.Matches gave unexpected result")
	}
}

func TestCategory_Icon(t *testing.T) {
	for _, c := range Categories() {
		switch icon := c.Icon().(type) {
		case SystemIcon:
			if icon.Name == "" {
				t.Errorf("%s: empty system icon name", c)
			}
		case EmojiIcon:
			if icon.Glyph == "" {
				t.Errorf("%s: empty emoji glyph", c)
			}
		default:
			t.Errorf("%s: unexpected icon type %T", c, icon)
		}
	}
}
