// Package resources holds one typed client per backend collection. Every
// call goes through a client.Doer and errors are returned unchanged.
package resources

import (
	"net/url"

	"github.com/dmitrijs2005/prepadmin/internal/client/client"
)

// Set bundles the clients of every collection.
type Set struct {
	Templates  *Templates
	Lessons    *Lessons
	Interviews *Interviews
	Users      *Users
	Images     *Images
	Billing    *Billing
}

func New(d client.Doer) *Set {
	return &Set{
		Templates:  NewTemplates(d),
		Lessons:    NewLessons(d),
		Interviews: NewInterviews(d),
		Users:      NewUsers(d),
		Images:     NewImages(d),
		Billing:    NewBilling(d),
	}
}

func itemPath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}
