package handlers

import (
	"net/http"
)

const cookbookLanding = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Cookbook App</title>
  <style>
    body { font-family: Arial, sans-serif; background-color: #f4f4f4; color: #333; margin: 0; }
    header { background-color: #333; color: #fff; padding: 1rem; text-align: center; }
    main { padding: 1rem; max-width: 800px; margin: 0 auto; }
    code { background-color: #eee; padding: 0 4px; }
  </style>
</head>
<body>
  <header>
    <h1>Cookbook App</h1>
    <p>Discover and share recipes.</p>
  </header>
  <main>
    <h2>Endpoints</h2>
    <ul>
      <li><code>GET /api/recipes</code> list recipes</li>
      <li><code>GET /api/recipes/:id</code> fetch a recipe</li>
      <li><code>POST /api/recipes</code> add a recipe</li>
      <li><code>PUT /api/recipes/:id</code> replace a recipe</li>
      <li><code>DELETE /api/recipes/:id</code> remove a recipe</li>
      <li><code>POST /api/register</code> create an account</li>
      <li><code>POST /api/users/:email/reset-password</code> reset a password</li>
    </ul>
  </main>
</body>
</html>
`

const booksLanding = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>In-N-Out-Books</title>
  <style>
    body { font-family: Georgia, serif; background-color: #faf7f2; color: #2b2b2b; margin: 0; }
    header { background-color: #6b3e26; color: #fff; padding: 1rem; text-align: center; }
    main { padding: 1rem; max-width: 800px; margin: 0 auto; }
    code { background-color: #eee; padding: 0 4px; }
  </style>
</head>
<body>
  <header>
    <h1>In-N-Out-Books</h1>
    <p>Keep track of the books you own, lend and want to read.</p>
  </header>
  <main>
    <h2>Endpoints</h2>
    <ul>
      <li><code>GET /api/books</code> list books</li>
      <li><code>GET /api/books/:id</code> fetch a book</li>
      <li><code>POST /api/books</code> add a book</li>
      <li><code>PUT /api/books/:id</code> replace a book</li>
      <li><code>DELETE /api/books/:id</code> remove a book</li>
      <li><code>POST /api/users/login</code> check credentials</li>
      <li><code>POST /api/users/:email/verify-security-question</code> answer security questions</li>
    </ul>
  </main>
</body>
</html>
`

// Landing serves a static HTML page.
func Landing(page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(page))
	}
}

// CookbookLanding serves the cookbook home page.
func CookbookLanding() http.HandlerFunc { return Landing(cookbookLanding) }

// BooksLanding serves the in-n-out-books home page.
func BooksLanding() http.HandlerFunc { return Landing(booksLanding) }
