package generator

import "github.com/Decentr-net/notos/internal/entities"

// nolint:gochecknoglobals
var (
	latinFirstNames = []string{
		"John", "Sarah", "Michael", "Emily", "David", "Jessica", "James", "Emma", "Robert", "Olivia",
		"William", "Sophia", "Alex", "Isabella", "Daniel", "Mia", "Chris", "Anna", "Mark", "Eva",
		"Ryan", "Chloe", "Adam", "Zoe", "Kevin", "Lily", "Brian", "Grace", "Jason", "Nora",
	}
	latinLastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez",
		"Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor",
		"Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White", "Harris",
	}
	arabicFirstNames = []string{
		"محمد", "أحمد", "سارة", "نورة", "خالد", "فهد", "ريم", "ليلى", "عمر", "يوسف", "فاطمة", "زينب",
		"عبدالله", "سلطان", "مها", "هند", "علي", "سعود", "تركي", "جود", "فيصل", "مشاري", "غادة", "حنان",
		"ياسر", "لمى", "سمر", "ماجد", "نايف", "أسامة", "رنا", "شهد", "عبير", "وليد", "طلال", "بدر",
		"منال", "نوال", "أمل", "هدى",
	}
	arabicLastNames = []string{
		"العتيبي", "الشمري", "القحطاني", "الحربي", "الزهراني", "الغامدي", "الدوسري", "المطيري",
		"العمري", "الشهري", "السبيعي", "المالكي", "اليامي", "العنزي", "السالم", "الرشيدي", "العازمي",
		"الخالدي", "المولد", "الهوساوي", "النجار", "الحمدان", "الجابر", "الفهيد", "التركي",
	}

	bios = []string{
		"محبي القهوة والهدوء ☕️", "Artist & Designer 🎨", "Software Engineer 💻", "كاتب وشاعر",
		"Photography Enthusiast 📸", "Just living life ✨", "مسافر دائم 🌍", "Music lover 🎵",
		"Dream big.", "صانع محتوى", "Tech Geek 🚀", "Coffee addict", "Nature lover 🌿",
		"أبحث عن الجمال في التفاصيل", "محب للتقنية والابتكار", "قارئ نهم 📚", "Life is a journey",
		"Simplicity is key 🔑", "مطور واجهات", "Digital Nomad", "Filmmaker 🎬", "Explorer",
	}

	avatars = []string{
		"https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?w=200&q=80",
		"https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=200&q=80",
		"https://images.unsplash.com/photo-1527980965255-d3b416303d12?w=200&q=80",
		"https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=200&q=80",
		"https://images.unsplash.com/photo-1599566150163-29194dcaad36?w=200&q=80",
		"https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=200&q=80",
		"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=200&q=80",
		"https://images.unsplash.com/photo-1633332755192-727a05c4013d?w=200&q=80",
		"https://images.unsplash.com/photo-1580489944761-15a19d654956?w=200&q=80",
		"https://images.unsplash.com/photo-1531427186611-ecfd6d936c79?w=200&q=80",
		"https://images.unsplash.com/photo-1528763380143-65b3ac89a3ff?w=200&q=80",
		"https://images.unsplash.com/photo-1624298357597-fd92dfbec01d?w=200&q=80",
		"https://images.unsplash.com/photo-1534528741775-53994a69daeb?w=200&q=80",
		"https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?w=200&q=80",
		"https://images.unsplash.com/photo-1570295999919-56ceb5ecca61?w=200&q=80",
		"https://images.unsplash.com/photo-1607746882042-944635dfe10e?w=200&q=80",
		"https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=200&q=80",
		"https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=200&q=80",
		"https://images.unsplash.com/photo-1552374196-c4e7ffc6e126?w=200&q=80",
		"https://images.unsplash.com/photo-1542206391-5f9989b90746?w=200&q=80",
	}

	comments = []string{
		"Beautiful! ❤️", "كلام جميل جداً", "Love this vibe ✨", "مبدع كالعادة", "Agree 100%",
		"فعلاً 👌", "Wonderful words", "So poetic...", "استمر يا بطل", "Wow!", "Touching.",
		"صح لسانك", "Amazing perspective", "منور", "Great post!", "Exactly what I needed to hear.",
		"Looking good!", "Nice one 🔥", "Love it!", "فنان ما شاء الله", "Inspired!", "أبدعت",
		"So true.", "Fantastic!", "تحفة فنية", "Keep it up!", "مذهل", "This made my day", "كلام من ذهب",
	}
)

type template struct {
	text  string
	tags  []string
	style entities.Style
}

func style(c entities.NoteColor, icon string, f entities.FontStyle) entities.Style {
	return entities.Style{Font: f, Color: c, Icon: icon}
}

// nolint:gochecknoglobals,lll
var templates = []template{
	{"The sunset today was absolutely breathtaking. #Nature #Sunset", []string{"#Nature", "#Sunset"}, style(entities.GradientSunsetColor, "Sun", entities.SansFont)},
	{"لا شيء يضاهي كوب قهوة في الصباح الباكر وصوت فيروز. #صباح_الخير #قهوة", []string{"#صباح_الخير", "#قهوة"}, style(entities.CanvasWarmColor, "Coffee", entities.SerifFont)},
	{"Just finished reading a great book. Highly recommend 'The Alchemist'. #Reading #Books", []string{"#Reading", "#Books"}, style(entities.RoseColor, "Star", entities.SerifFont)},
	{"Coding all night long. The bug is finally fixed! 🐛✅ #DevLife #Coding", []string{"#DevLife", "#Coding"}, style(entities.DarkColor, "Code", entities.MonoFont)},
	{"هدوء الليل هو أفضل وقت للكتابة. #خواطر #ليل", []string{"#خواطر", "#ليل"}, style(entities.VelvetMidnightColor, "Moon", entities.HandFont)},
	{"Traveling to Dubai next week! Can't wait. ✈️ #Travel #Dubai", []string{"#Travel", "#Dubai"}, style(entities.BlueColor, "Plane", entities.SansFont)},
	{"Creativity is intelligence having fun. #Art #Design", []string{"#Art", "#Design"}, style(entities.PaintTealColor, "Palette", entities.SansFont)},
	{"كل ما تحتاجه هو الإيمان بنفسك. #تحفيز #تطوير_الذات", []string{"#تحفيز", "#تطوير_الذات"}, style(entities.EmeraldColor, "Zap", entities.SansFont)},
	{"New recipe experiment success! 🍝 #Food #Cooking", []string{"#Food", "#Cooking"}, style(entities.YellowColor, "Smile", entities.SansFont)},
	{"Listening to some old classics. 🎵 #Music #Vibes", []string{"#Music", "#Vibes"}, style(entities.VioletColor, "Music", entities.SansFont)},
	{"النجاح رحلة وليس وجهة. استمتع بالطريق. #نجاح", []string{"#نجاح"}, style(entities.WhiteColor, "Star", entities.SerifFont)},
	{"Silence is an answer too. #Peace", []string{"#Peace"}, style(entities.GlassObsidianColor, "Feather", entities.SerifFont)},
	{"Why is React so addictive? 😂 #Frontend", []string{"#Frontend"}, style(entities.DarkColor, "Code", entities.MonoFont)},
	{"الجمال يكمن في البساطة. #تصميم", []string{"#تصميم"}, style(entities.WhiteColor, "Star", entities.SansFont)},
	{"Rainy days and coding. 🌧️ #Cozy", []string{"#Cozy"}, style(entities.BlueColor, "Code", entities.MonoFont)},
	{"كن أنت التغيير الذي تريد أن تراه في العالم. #اقتباسات", []string{"#اقتباسات"}, style(entities.EmeraldColor, "Feather", entities.SerifFont)},
	{"Exploring the city streets. 🏙️ #Urban #Photography", []string{"#Urban", "#Photography"}, style(entities.DarkColor, "Camera", entities.SansFont)},
	{"Always learning, always growing. #Growth", []string{"#Growth"}, style(entities.YellowColor, "Zap", entities.SansFont)},
	{"مساء الخير يا جميلين. أتمنى لكم يوماً سعيداً. 🌸 #مساء_الخير", []string{"#مساء_الخير"}, style(entities.RoseColor, "Smile", entities.HandFont)},
	{"Technology is moving so fast! #AI #Tech", []string{"#AI", "#Tech"}, style(entities.GradientMysticColor, "Cpu", entities.SansFont)},
	{"Minimalism is not about having less. It's about making room for more of what matters. #Minimalism", []string{"#Minimalism"}, style(entities.WhiteColor, "Star", entities.SansFont)},
	{"فنجان قهوة وكتاب، هذا هو السلام. ☕📖 #قراءة", []string{"#قراءة"}, style(entities.CanvasWarmColor, "Coffee", entities.SerifFont)},
	{"Workout done! 💪 #Fitness", []string{"#Fitness"}, style(entities.PaintCoralColor, "Zap", entities.SansFont)},
	{"أحياناً نحتاج للابتعاد قليلاً لنرى الصورة بوضوح. #حكمة", []string{"#حكمة"}, style(entities.GlassFrostColor, "Feather", entities.SerifFont)},
	{"Dreaming of the ocean. 🌊 #Beach", []string{"#Beach"}, style(entities.GradientOceanColor, "Plane", entities.SansFont)},
	{"Start where you are. Use what you have. Do what you can. #Motivation", []string{"#Motivation"}, style(entities.VelvetRoyalColor, "Star", entities.SansFont)},
	{"لا تدع الخوف يمنعك من تحقيق أحلامك. #طموح", []string{"#طموح"}, style(entities.VelvetRedColor, "Flame", entities.SansFont)},
	{"Pizza night! 🍕 #Foodie", []string{"#Foodie"}, style(entities.YellowColor, "Smile", entities.SansFont)},
	{"Late night thoughts... 💭 #Insomnia", []string{"#Insomnia"}, style(entities.VelvetMidnightColor, "Moon", entities.HandFont)},
	{"الحياة قصيرة، استمتع بكل لحظة. #سعادة", []string{"#سعادة"}, style(entities.PaintMustardColor, "Sun", entities.HandFont)},
	{"Working on a new project. Secret for now! 🤫 #Hustle", []string{"#Hustle"}, style(entities.DarkColor, "Zap", entities.MonoFont)},
	{"أحب الشتاء ورائحة المطر. ☔ #شتاء", []string{"#شتاء"}, style(entities.BlueColor, "Star", entities.SansFont)},
	{"Photography is the story I fail to put into words. #Photo", []string{"#Photo"}, style(entities.CanvasGreyColor, "Camera", entities.SerifFont)},
	{"Good vibes only. ✌️ #Positivity", []string{"#Positivity"}, style(entities.GradientNatureColor, "Smile", entities.SansFont)},
	{"العائلة هي كل شيء. ❤️ #عائلة", []string{"#عائلة"}, style(entities.RoseColor, "Heart", entities.HandFont)},
	{"Debugging code is like being a detective in a crime movie where you are also the murderer. 🕵️‍♂️ #CodingHumor", []string{"#CodingHumor"}, style(entities.DarkColor, "Code", entities.MonoFont)},
}
