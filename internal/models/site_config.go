package models

// SiteConfig holds the site-wide settings stored by the backend as key/value pairs.
type SiteConfig map[string]string
