package model

import "strconv"

// LocationReference 一次广播引用的坐标及可分享的地图链接。
type LocationReference struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	URL       string  `json:"url"`
}

// NewLocationReference 由坐标派生地图链接，纯函数，链接对同一坐标恒定。
func NewLocationReference(lat, lon float64) LocationReference {
	return LocationReference{
		Latitude:  lat,
		Longitude: lon,
		URL: "http://www.google.com/maps/place/" +
			strconv.FormatFloat(lat, 'f', -1, 64) + "," +
			strconv.FormatFloat(lon, 'f', -1, 64),
	}
}
