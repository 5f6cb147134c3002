package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/viktortaseski/SelfServ-sub000/controllers"
	"github.com/viktortaseski/SelfServ-sub000/middlewares"
	"github.com/viktortaseski/SelfServ-sub000/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Limiter global per-IP; harus terpasang sebelum route didaftarkan,
	// gin tidak menambahkan middleware ke route yang sudah ada.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	tokenCtrl := controllers.NewTokenController(db)
	orderCtrl := controllers.NewOrderController(db)
	tableCtrl := controllers.NewTableController(db)
	printerCtrl := controllers.NewPrinterController(db)
	printJobCtrl := controllers.NewPrintJobController(db)

	printerAuth := middlewares.PrinterAuthMiddleware(services.NewPrinterAuthService(db))

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// -- CUSTOMER (tanpa auth, cukup access token di body) --
	r.POST("/tokens/exchange", tokenCtrl.Exchange)
	r.POST("/orders/customer", orderCtrl.PlaceCustomerOrder)

	// ----------------------------------------------------------------
	//                      STAFF ROUTES (JWT)
	// ----------------------------------------------------------------
	staff := r.Group("/")
	staff.Use(middlewares.AuthMiddleware())
	{
		staff.POST("/orders/waiter", middlewares.RequireRole("waiter"), orderCtrl.PlaceWaiterOrder)
		staff.GET("/orders/:order_id", middlewares.RequireRole("waiter"), orderCtrl.GetOrderByID)

		admin := staff.Group("/admin")
		admin.Use(middlewares.RequireRole("admin"))
		{
			admin.POST("/tables", tableCtrl.CreateTable)
			admin.GET("/tables", tableCtrl.GetAllTables)
			admin.GET("/tables/:table_id", tableCtrl.GetTableByID)

			admin.POST("/printers", printerCtrl.CreatePrinter)
			admin.GET("/printers", printerCtrl.GetAllPrinters)
			admin.PATCH("/printers/:printer_id/active", printerCtrl.SetPrinterActive)
		}
	}

	// ----------------------------------------------------------------
	//                      PRINTER ROUTES (api token)
	// ----------------------------------------------------------------
	printJobs := r.Group("/print-jobs")
	printJobs.Use(printerAuth)
	{
		printJobs.GET("/config", printJobCtrl.GetConfig)
		printJobs.POST("/claim", printJobCtrl.ClaimJob)
		printJobs.POST("/:job_id/done", printJobCtrl.MarkDone)
		printJobs.POST("/:job_id/error", printJobCtrl.MarkError)
	}

	return r
}
