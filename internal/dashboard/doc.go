// Package dashboard implements the data-synchronization contract between the
// rendered dashboard and the tenancy API.
//
// A Page holds the containers a rendered page is composed of. Loaders fetch a
// collection and replace their container's content wholesale; a loader whose
// container is not on the page does nothing. Mutators submit a Form, and on
// success reload exactly the loader they are paired with. View tracks which
// section is shown and which modals are open.
package dashboard
