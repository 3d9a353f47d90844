package questions

import "party-service/internal/models"

var defaultQuestions = []models.Question{
	// Mathematics
	{Category: "Mathematics", Difficulty: "easy", Type: "text", Question: "What is 15 + 27?", QuestionFr: "Combien font 15 + 27 ?", Answer: "42", AnswerFr: "42"},
	{Category: "Mathematics", Difficulty: "medium", Type: "text", Question: "What is the square root of 144?", QuestionFr: "Quelle est la racine carrée de 144 ?", Answer: "12", AnswerFr: "12"},
	{Category: "Mathematics", Difficulty: "hard", Type: "text", Question: "What is π (Pi) rounded to 2 decimal places?", QuestionFr: "Quelle est la valeur de π (Pi) arrondie à 2 décimales ?", Answer: "3.14", AnswerFr: "3,14"},

	// General Knowledge
	{Category: "General Knowledge", Difficulty: "easy", Type: "multiple-choice", Question: "What is the capital of France?", QuestionFr: "Quelle est la capitale de la France ?", Options: []string{"Berlin", "Madrid", "Paris", "Rome"}, Answer: "Paris"},
	{Category: "General Knowledge", Difficulty: "easy", Type: "multiple-choice", Question: "How many continents are there?", QuestionFr: "Combien y a-t-il de continents ?", Options: []string{"5", "6", "7", "8"}, Answer: "7"},
	{Category: "General Knowledge", Difficulty: "medium", Type: "text", Question: "What is the largest planet in our solar system?", QuestionFr: "Quelle est la plus grande planète de notre système solaire ?", Answer: "Jupiter", AnswerFr: "Jupiter"},

	// French Language
	{Category: "French Language", Difficulty: "easy", Type: "text", Question: "How do you say \"thank you\" in French?", QuestionFr: "Comment dit-on \"merci\" en français ?", Answer: "Merci", AnswerFr: "Merci"},
	{Category: "French Language", Difficulty: "medium", Type: "multiple-choice", Question: "Which is the correct conjugation of \"être\" in present tense for \"je\"?", QuestionFr: "Quelle est la conjugaison correcte de \"être\" au présent pour \"je\" ?", Options: []string{"suis", "es", "est", "sommes"}, Answer: "suis"},
	{Category: "French Language", Difficulty: "hard", Type: "text", Question: "What is the past participle of \"avoir\"?", QuestionFr: "Quel est le participe passé de \"avoir\" ?", Answer: "eu", AnswerFr: "eu"},

	// Who is it
	{Category: "Who is it", Difficulty: "easy", Type: "multiple-choice", Question: "Famous actor known for \"Titanic\"", QuestionFr: "Acteur célèbre connu pour \"Titanic\"", Options: []string{"Brad Pitt", "Leonardo DiCaprio", "Tom Cruise", "Johnny Depp"}, Answer: "Leonardo DiCaprio"},
	{Category: "Who is it", Difficulty: "medium", Type: "text", Question: "British singer with \"Blinding Lights\" hit", QuestionFr: "Chanteur britannique avec le succès \"Blinding Lights\"", Answer: "The Weeknd", AnswerFr: "The Weeknd"},

	// What is it
	{Category: "What is it", Difficulty: "easy", Type: "multiple-choice", Question: "What device is used to measure temperature?", QuestionFr: "Quel appareil est utilisé pour mesurer la température ?", Options: []string{"Barometer", "Thermometer", "Anemometer", "Hygrometer"}, Answer: "Thermometer"},
	{Category: "What is it", Difficulty: "medium", Type: "text", Question: "What is a group of lions called?", QuestionFr: "Comment appelle-t-on un groupe de lions ?", Answer: "Pride", AnswerFr: "Fierté"},

	// Logos
	{Category: "Logos", Difficulty: "easy", Type: "multiple-choice", Question: "A swoosh is the logo of which company?", QuestionFr: "Un swoosh est le logo de quelle entreprise ?", Options: []string{"Adidas", "Nike", "Puma", "Reebok"}, Answer: "Nike"},
	{Category: "Logos", Difficulty: "medium", Type: "text", Question: "Which tech company has a bitten apple logo?", QuestionFr: "Quelle entreprise technologique a un logo de pomme mordue ?", Answer: "Apple", AnswerFr: "Apple"},

	// Road Code
	{Category: "Road Code", Difficulty: "easy", Type: "multiple-choice", Question: "What does a red traffic light mean?", QuestionFr: "Que signifie un feu tricolore rouge ?", Options: []string{"Slow down", "Stop", "Prepare to move", "Go"}, Answer: "Stop"},
	{Category: "Road Code", Difficulty: "medium", Type: "text", Question: "What is the speed limit in most city centers in France?", QuestionFr: "Quelle est la limite de vitesse dans la plupart des centres-villes en France ?", Answer: "50 km/h", AnswerFr: "50 km/h"},

	// 4 Images 1 Word
	{Category: "4 Images 1 Word", Difficulty: "easy", Type: "image-text", Question: "Common word shown in 4 images", QuestionFr: "Mot commun montré en 4 images", ImageURLs: []string{"https://via.placeholder.com/100?text=sun", "https://via.placeholder.com/100?text=light", "https://via.placeholder.com/100?text=bright", "https://via.placeholder.com/100?text=day"}, Answer: "light", AnswerFr: "lumière"},

	// Lyrics Translation
	{Category: "Lyrics Translation", Difficulty: "medium", Type: "lyrics", Question: "Guess the English song from French lyrics: \"Je veux danser\"", QuestionFr: "Devinez la chanson anglaise à partir des paroles françaises : \"Je veux danser\"", Answer: "I Wanna Dance With Somebody", AnswerFr: "I Wanna Dance With Somebody"},
	{Category: "Lyrics Translation", Difficulty: "hard", Type: "lyrics", Question: "Translate to English: \"Tous les soirs je rêve\"", QuestionFr: "Traduire en anglais : \"Tous les soirs je rêve\"", Answer: "Every night I dream", AnswerFr: "Chaque nuit je rêve"},

	// Error Spotting
	{Category: "Error Spotting", Difficulty: "medium", Type: "image-text", Question: "Spot the error in the image", QuestionFr: "Identifiez l'erreur dans l'image", ImageURLs: []string{"https://via.placeholder.com/200?text=Error+Here"}, Answer: "missing element", AnswerFr: "élément manquant"},

	// Rebus
	{Category: "Rebus", Difficulty: "hard", Type: "image-text", Question: "Solve this rebus puzzle", QuestionFr: "Résolvez ce rébus", ImageURLs: []string{"https://via.placeholder.com/150?text=STAND+I"}, Answer: "I understand", AnswerFr: "Je comprends"},

	// Psychotechnique
	{Category: "Psychotechnique", Difficulty: "hard", Type: "text", Question: "What comes next: 2, 4, 8, 16, ?", QuestionFr: "Qu'vient après : 2, 4, 8, 16, ?", Answer: "32", AnswerFr: "32"},
	{Category: "Psychotechnique", Difficulty: "hard", Type: "text", Question: "What comes next: A, C, E, G, ?", QuestionFr: "Qu'vient après : A, C, E, G, ?", Answer: "I", AnswerFr: "I"},

	// Ranking
	{Category: "Ranking", Difficulty: "medium", Type: "ranking", Question: "Order these artists by Spotify streams (most to least)", QuestionFr: "Triez ces artistes par flux Spotify (plus au moins)", ImageURLs: []string{"https://via.placeholder.com/100?text=Artist1", "https://via.placeholder.com/100?text=Artist2", "https://via.placeholder.com/100?text=Artist3"}, Answer: []string{"Artist1", "Artist3", "Artist2"}, AnswerFr: []string{"Artist1", "Artist3", "Artist2"}},

	// Geography + Date
	{Category: "Geography + Date", Difficulty: "medium", Type: "text", Question: "In what year was the Eiffel Tower built?", QuestionFr: "En quelle année la Tour Eiffel a-t-elle été construite ?", Answer: "1889", AnswerFr: "1889"},
	{Category: "Geography + Date", Difficulty: "hard", Type: "text", Question: "When was the Berlin Wall built?", QuestionFr: "Quand le Mur de Berlin a-t-il été construit ?", Answer: "1961", AnswerFr: "1961"},

	// Animal Audio
	{Category: "Animal Audio", Difficulty: "easy", Type: "audio", Question: "What animal makes this sound?", QuestionFr: "Quel animal fait ce bruit ?", AudioURL: "https://via.placeholder.com/audio?text=dog+bark", Options: []string{"Dog", "Cat", "Cow", "Duck"}, Answer: "Dog"},
	{Category: "Animal Audio", Difficulty: "medium", Type: "audio", Question: "Identify this bird by its call", QuestionFr: "Identifiez cet oiseau par son cri", AudioURL: "https://via.placeholder.com/audio?text=bird+song", Answer: "Nightingale", AnswerFr: "Rossignol"},

	// Petit Bac
	{Category: "Petit Bac", Difficulty: "hard", Type: "petit-bac", Question: "Complete the grid starting with letter \"B\"", QuestionFr: "Complétez la grille commençant par la lettre \"B\"", Categories: []string{"Animal", "Celebrity", "Fruit/Vegetable", "Country", "Job"}, Answer: map[string]string{"animal": "Bear", "celebrity": "Beyoncé", "fruit": "Banana", "country": "Belgium", "job": "Baker"}, AnswerFr: map[string]string{"animal": "Ours", "celebrity": "Beyoncé", "fruit": "Banane", "country": "Belgique", "job": "Boulanger"}},

	// Blurred Images
	{Category: "Blurred Images", Difficulty: "medium", Type: "image-text", Question: "Guess what this blurred image is", QuestionFr: "Devinez ce que c'est cette image floutée", ImageURLs: []string{"https://via.placeholder.com/200?text=Blurred+Object"}, Answer: "Car", AnswerFr: "Voiture"},

	// Culture G
	{Category: "Culture G", Difficulty: "easy", Type: "multiple-choice", Question: "What is the smallest country in the world?", QuestionFr: "Quel est le plus petit pays du monde ?", Options: []string{"Monaco", "Vatican City", "San Marino", "Liechtenstein"}, Answer: "Vatican City"},
	{Category: "Culture G", Difficulty: "hard", Type: "text", Question: "Who wrote \"1984\"?", QuestionFr: "Qui a écrit \"1984\" ?", Answer: "George Orwell", AnswerFr: "George Orwell"},

	// Floated Heads
	{Category: "Floated Heads", Difficulty: "medium", Type: "image-text", Question: "Who is this person?", QuestionFr: "Qui est cette personne ?", ImageURLs: []string{"https://via.placeholder.com/150?text=Person+Portrait"}, Answer: "Unknown Celebrity", AnswerFr: "Célébrité Inconnue"},
}
