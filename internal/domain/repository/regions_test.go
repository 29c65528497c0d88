package repository

import "testing"

func TestResolveRegionCoordsExact(t *testing.T) {
	c := ResolveRegionCoords("Kerala_Kottayam")
	if c.Lat != 9.59 || c.Lon != 76.52 {
		t.Fatalf("got %+v", c)
	}
}

func TestResolveRegionCoordsStateFallback(t *testing.T) {
	c := ResolveRegionCoords("Maharashtra_Nagpur")
	if c.Lat != 19.75 || c.Lon != 75.71 {
		t.Fatalf("got %+v", c)
	}
}

func TestResolveRegionCoordsDefault(t *testing.T) {
	c := ResolveRegionCoords("Punjab_Ludhiana")
	if c != defaultCoords {
		t.Fatalf("got %+v", c)
	}
}
