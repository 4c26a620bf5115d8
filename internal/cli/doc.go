// Package cli implements the interactive inventory menus.
//
// The program alternates between two menus. The login menu asks for a
// username and password; after a successful login the product menu
// offers numbered actions until the user logs out:
//
//	1. List products        5. Adjust stock
//	2. Add product          6. Search products
//	3. Update product       7. Register new user
//	4. Delete product       8. Log out
//
// All parsing of numbers happens here. Malformed input is reported and
// the menu is shown again; nothing typed at a prompt ends the program
// except choosing exit or closing the input stream.
package cli
