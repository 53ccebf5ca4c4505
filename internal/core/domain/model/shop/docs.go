// Package shop provides the Shop aggregate that ties a storefront to its seller and pickup address.
package shop
