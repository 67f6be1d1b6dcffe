package trivia

// Category is an Open Trivia Database category.
type Category struct {
	ID   int
	Name string
}

// Categories lists the categories offered by quiz_categories.
var Categories = []Category{
	{ID: 9, Name: "General Knowledge"},
	{ID: 10, Name: "Books"},
	{ID: 11, Name: "Film"},
	{ID: 12, Name: "Music"},
	{ID: 13, Name: "Musicals & Theatres"},
	{ID: 14, Name: "Television"},
	{ID: 15, Name: "Video Games"},
	{ID: 16, Name: "Board Games"},
	{ID: 17, Name: "Science & Nature"},
	{ID: 18, Name: "Computers"},
	{ID: 19, Name: "Mathematics"},
	{ID: 20, Name: "Mythology"},
	{ID: 21, Name: "Sports"},
	{ID: 22, Name: "Geography"},
	{ID: 23, Name: "History"},
	{ID: 24, Name: "Politics"},
	{ID: 25, Name: "Art"},
	{ID: 26, Name: "Celebrities"},
	{ID: 27, Name: "Animals"},
	{ID: 28, Name: "Vehicles"},
	{ID: 29, Name: "Comics"},
	{ID: 30, Name: "Gadgets"},
	{ID: 31, Name: "Anime & Manga"},
	{ID: 32, Name: "Cartoons & Animations"},
}
