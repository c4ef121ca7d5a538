// Package branding holds the product names shown in page chrome.
package branding

// AppName is the public festival name.
const AppName = "Lakeshore Arts Festival"

// Dates is the festival weekend as shown to visitors.
const Dates = "July 17-19, 2026"

// Location is the festival grounds.
const Location = "Harbourfront Park, 200 Lakeshore Drive"
