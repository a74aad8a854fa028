package report

import "testing"

func TestStoreLinksAndroid(t *testing.T) {
	links := StoreLinksFor("com.ludo.king", "")
	if links.GooglePlay != "https://play.google.com/store/apps/details?id=com.ludo.king" {
		t.Errorf("google play = %q", links.GooglePlay)
	}
	if links.AppStore != "" {
		t.Errorf("android bundle got app store link %q", links.AppStore)
	}
}

func TestStoreLinksIOSNumeric(t *testing.T) {
	links := StoreLinksFor("993090598", "")
	if links.AppStore != "https://apps.apple.com/app/id993090598" {
		t.Errorf("app store = %q", links.AppStore)
	}
	if links.GooglePlay != "" {
		t.Errorf("numeric bundle got google play link %q", links.GooglePlay)
	}
}

func TestStoreLinksIOSIdPrefix(t *testing.T) {
	links := StoreLinksFor("id993090598", "ios")
	if links.AppStore != "https://apps.apple.com/app/id993090598" {
		t.Errorf("app store = %q", links.AppStore)
	}
}

func TestStoreLinksOSOverride(t *testing.T) {
	// explicit android OS links to Play even for an unusual bundle shape
	links := StoreLinksFor("Wt0m9nSXAGYByPqs", "Android")
	if links.GooglePlay == "" {
		t.Error("android OS should yield a Google Play link")
	}
}

func TestStoreLinksUnknown(t *testing.T) {
	links := StoreLinksFor("", "")
	if links.AppStore != "" || links.GooglePlay != "" {
		t.Errorf("empty bundle got links %+v", links)
	}

	links = StoreLinksFor("weird-bundle", "")
	if links.AppStore != "" || links.GooglePlay != "" {
		t.Errorf("unrecognized bundle got links %+v", links)
	}
}
